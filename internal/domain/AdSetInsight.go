package domain

// AdSetInsight representa as métricas derivadas de um conjunto de anúncios
// para a janela dos últimos 30 dias
type AdSetInsight struct {
	Name        string  `json:"name"`
	Spend       float64 `json:"spend"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	Conversions int     `json:"conversions"`
	CostPerConv float64 `json:"cost_per_conv"`
	ROI         float64 `json:"roi"`
}
