package dtos

type ContrastRequest struct {
	FG string `json:"fg" mapstructure:"fg" validate:"required"`
	BG string `json:"bg" mapstructure:"bg" validate:"required"`
}

type ContrastResult struct {
	Ratio      float64 `json:"ratio"`
	PassNormal bool    `json:"passNormal"`
	PassLarge  bool    `json:"passLarge"`
}

type NearestColorRequest struct {
	Hex string `json:"hex" mapstructure:"hex" validate:"required"`
}

type NearestColorResult struct {
	Nearest  string  `json:"nearest"`
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance"`
}

type LogoHeightRequest struct {
	BBox        []float64 `json:"bbox" mapstructure:"bbox"`
	MinHeightPx float64   `json:"minHeightPx" mapstructure:"minHeightPx"`
}

type LogoHeightResult struct {
	HeightPx int  `json:"heightPx"`
	Pass     bool `json:"pass"`
}

type LayoutAnalysis struct {
	MarginBalance          int      `json:"margin_balance"`
	LeftRightBalance       int      `json:"left_right_balance"`
	ClutterRatio           int      `json:"clutter_ratio"`
	EyeFlowPath            []string `json:"eye_flow_path"`
	FocalPointClarity      int      `json:"focal_point_clarity"`
	RuleOfThirdsCompliance bool     `json:"rule_of_thirds_compliance"`
	GridAlignment          int      `json:"grid_alignment"`
	BalanceScore           int      `json:"balance_score"`
	Issues                 []string `json:"issues"`
}
