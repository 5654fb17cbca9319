package schema

// EnrichedSubScore adds presentation data to a SubScore.
type EnrichedSubScore struct {
	Rank   int    `json:"rank"`
	Status string `json:"status"`
	SubScore
}

// GetSubScoreStatus returns a plain text status for a 0-10 sub-score.
func GetSubScoreStatus(score float64) string {
	switch {
	case score >= 10:
		return "Normal"
	case score >= 7.5:
		return "Reduced"
	case score >= 5:
		return "Impaired"
	default:
		return "Poor"
	}
}

// EnrichSubScores adds rank and status to a list of sub-scores.
func EnrichSubScores(scores []SubScore) []EnrichedSubScore {
	output := make([]EnrichedSubScore, len(scores))
	for i, s := range scores {
		output[i] = EnrichedSubScore{
			Rank:     i + 1,
			Status:   GetSubScoreStatus(s.Score),
			SubScore: s,
		}
	}
	return output
}

// BandInterpretations maps bands to their human-readable interpretation.
var BandInterpretations = map[Band]string{
	HealthyBand:  "Gait pattern within healthy range",
	MildBand:     "Mild gait deviation; monitor and re-assess",
	ModerateBand: "Moderate fall/Parkinsonian risk; clinical review suggested",
	HighBand:     "High risk; recommend professional evaluation",
}

// FlagWarnings maps flag codes to a warning shown next to the report.
var FlagWarnings = map[string]string{
	FlagNoStepEvents:         "No heel strikes detected; step metrics not reported",
	FlagInsufficientSteps:    "Too few strikes on one side; step metrics not reported",
	FlagNoAlternatingSteps:   "No left/right strike pairs; step length not reported",
	FlagSpeedUndefined:       "Too few frames or pelvis missing at the ends; gait speed not reported",
	FlagArmSwingMissing:      "Wrist or shoulder samples missing on one side; arm swing not reported",
	FlagArmSwingUndetectable: "Arm swing below the noise floor; arm swing not reported",
	FlagTrunkUndefined:       "Up direction or trunk vector unavailable; trunk flexion not reported",
}

// FlagWarning pairs a raised flag with its warning.
type FlagWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warnings lists the warnings of the raised flags in code order.
func (f ConfidenceFlags) Warnings() []FlagWarning {
	codes := f.Codes()
	out := make([]FlagWarning, len(codes))
	for i, code := range codes {
		out[i] = FlagWarning{Code: code, Message: FlagWarnings[code]}
	}
	return out
}
