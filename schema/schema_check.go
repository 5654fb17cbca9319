package schema

// CheckViolation represents a score that fell below its minimum.
type CheckViolation struct {
	Key       MetricKey `json:"key"` // empty for the composite
	Score     float64   `json:"score"`
	Threshold float64   `json:"threshold"`
}

// CheckResult represents the result of a threshold check.
type CheckResult struct {
	Passed       bool                  `json:"passed"`
	Source       string                `json:"source"`
	Composite    float64               `json:"composite"`
	Band         Band                  `json:"band"`
	MinComposite float64               `json:"min_composite"`
	MinSubScores map[MetricKey]float64 `json:"min_sub_scores"`
	Violations   []CheckViolation      `json:"violations"`
	Warnings     []string              `json:"warnings"`
}
