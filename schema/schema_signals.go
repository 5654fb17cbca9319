package schema

// SignalTrace is one plotted side of the strike signal.
type SignalTrace struct {
	Side    Side      `json:"side"`
	Frames  []int     `json:"frames"`
	Values  []float64 `json:"values"`
	Strikes []int     `json:"strikes"` // frames detected as strikes
}

// SignalSet holds the ankle height traces used for strike detection.
type SignalSet struct {
	Source string      `json:"source"`
	FPS    float64     `json:"fps"`
	Left   SignalTrace `json:"left"`
	Right  SignalTrace `json:"right"`
}
