// Package schema has the models, constants and defaults shared by all parts of gaitscore.
package schema

// ScoreSummary is the scorer output for a set of metrics.
type ScoreSummary struct {
	SubScores map[MetricKey]SubScore `json:"sub_scores"`
	Composite float64                `json:"composite"`
	Band      Band                   `json:"band"`
}
