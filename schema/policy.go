package schema

// ScoringPolicy is the healthy range, direction and weight of a scored metric.
type ScoringPolicy struct {
	Key           MetricKey `json:"key"`
	Lo            float64   `json:"lo"`
	Hi            float64   `json:"hi"`
	LowerIsBetter bool      `json:"lower_is_better"`
	Weight        float64   `json:"weight"`
	Description   string    `json:"description"`
}

// PolicySet maps metric keys to their policies.
type PolicySet map[MetricKey]ScoringPolicy

// DefaultPolicies returns the built-in healthy ranges and weights.
func DefaultPolicies() PolicySet {
	return PolicySet{
		GaitSpeed:           {Key: GaitSpeed, Lo: 1.2, Hi: 1.4, Weight: 2.0, Description: "Pelvis travel speed over the ground plane"},
		AvgStepLength:       {Key: AvgStepLength, Lo: 0.6, Hi: 0.8, Weight: 1.5, Description: "Mean distance between alternating foot strikes"},
		AvgArmSwing:         {Key: AvgArmSwing, Lo: 0.2, Hi: 0.5, Weight: 2.5, Description: "Mean wrist excursion relative to the shoulder"},
		ArmSwingAsymmetry:   {Key: ArmSwingAsymmetry, Lo: 0, Hi: 0.2, LowerIsBetter: true, Weight: 2.0, Description: "Left/right arm swing imbalance"},
		StepLengthCV:        {Key: StepLengthCV, Lo: 0, Hi: 0.05, LowerIsBetter: true, Weight: 1.0, Description: "Step length variability"},
		StepLengthAsymmetry: {Key: StepLengthAsymmetry, Lo: 0, Hi: 0.1, LowerIsBetter: true, Weight: 1.0, Description: "Left/right step length imbalance"},
		AvgTrunkFlexion:     {Key: AvgTrunkFlexion, Lo: 0, Hi: 15, LowerIsBetter: true, Weight: 0.5, Description: "Forward lean of the pelvis-to-chest vector"},
	}
}

// Clone returns a copy of the set.
func (ps PolicySet) Clone() PolicySet {
	out := make(PolicySet, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}

// TotalWeight returns the sum of all policy weights.
func (ps PolicySet) TotalWeight() float64 {
	total := 0.0
	for _, p := range ps {
		total += p.Weight
	}
	return total
}
