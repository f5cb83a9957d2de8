package pages

type ChartDataset struct {
	Label       string `json:"label"`
	Data        []int  `json:"data"`
	BorderWidth int    `json:"borderWidth"`
}

type ChartAxis struct {
	BeginAtZero bool `json:"beginAtZero"`
}

type ChartConfig struct {
	Type string `json:"type"`
	Data struct {
		Labels   []string       `json:"labels"`
		Datasets []ChartDataset `json:"datasets"`
	} `json:"data"`
	Options struct {
		Scales struct {
			Y ChartAxis `json:"y"`
		} `json:"scales"`
	} `json:"options"`
}

// StocksFlowChart is the sample bar chart drawn on the dashboard.
func StocksFlowChart() ChartConfig {
	var cfg ChartConfig

	cfg.Type = "bar"
	cfg.Data.Labels = []string{"Mon", "Tue", "Wed", "Thur", "Fri", "Sat"}
	cfg.Data.Datasets = []ChartDataset{{
		Label:       "Stocks Flow Chart",
		Data:        []int{12, 19, 3, 5, 2, 3},
		BorderWidth: 1,
	}}
	cfg.Options.Scales.Y.BeginAtZero = true

	return cfg
}
