package domain

// BusinessInsight é um insight acionável gerado pela IA a partir
// dos dados normalizados dos provedores
type BusinessInsight struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Impact         string `json:"impact"`
}

// AdStrategy é a recomendação estratégica da IA sobre os conjuntos de anúncios
type AdStrategy struct {
	Winner           string   `json:"winner"`
	Reasoning        string   `json:"reasoning"`
	TacticalAdvice   []string `json:"tacticalAdvice"`
	ScalingPotential string   `json:"scalingPotential"`
}
