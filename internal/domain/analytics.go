package domain

// AnalyticsPoint é um ponto da série temporal diária do Google Analytics.
// O campo Name carrega o rótulo curto da data (ex: "Jan 5"), que é a chave
// usada pelos gráficos do dashboard.
type AnalyticsPoint struct {
	Name        string `json:"name"`
	Traffic     int    `json:"traffic"`
	Conversions int    `json:"conv"`
}

// LeadDetail é uma linha do relatório de origem de leads,
// quebrado por data, origem, mídia e campanha
type LeadDetail struct {
	Date        string `json:"date"`
	Source      string `json:"source"`
	Medium      string `json:"medium"`
	Campaign    string `json:"campaign"`
	Sessions    int    `json:"sessions"`
	Users       int    `json:"users"`
	Conversions int    `json:"conversions"`
}
