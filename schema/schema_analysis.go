package schema

import "time"

// AnalysisResult is the complete output of one analysis run.
type AnalysisResult struct {
	SessionID    string                 `json:"session_id"`
	Source       string                 `json:"source"`
	AnalyzedAt   time.Time              `json:"analyzed_at"`
	FPS          float64                `json:"fps"`
	FrameCount   int                    `json:"frame_count"`
	FirstFrame   int                    `json:"first_frame"`
	LastFrame    int                    `json:"last_frame"`
	Strikes      StrikeSet              `json:"strikes"`
	Metrics      MetricSet              `json:"metrics"`
	Supplemental MetricSet              `json:"supplemental"`
	Flags        ConfidenceFlags        `json:"flags"`
	SubScores    map[MetricKey]SubScore `json:"sub_scores"`
	Composite    float64                `json:"composite"`
	Band         Band                   `json:"band"`
}

// OrderedSubScores returns sub-scores in report order.
func (r *AnalysisResult) OrderedSubScores() []SubScore {
	out := make([]SubScore, 0, len(r.SubScores))
	for _, key := range ScoredMetrics {
		if s, ok := r.SubScores[key]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Duration returns the analyzed time span in seconds.
func (r *AnalysisResult) Duration() float64 {
	if r.FPS <= 0 {
		return 0
	}
	return float64(r.LastFrame-r.FirstFrame) / r.FPS
}
