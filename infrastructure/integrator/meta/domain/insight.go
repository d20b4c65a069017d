package metadomain

// AdSetRow é uma linha bruta do endpoint de insights da Graph API.
// Todas as métricas chegam como strings.
type AdSetRow struct {
	AdSetName    string        `json:"adset_name"`
	Spend        string        `json:"spend"`
	Clicks       string        `json:"clicks"`
	Impressions  string        `json:"impressions"`
	Actions      []ActionValue `json:"actions"`
	ActionValues []ActionValue `json:"action_values"`
}

// ActionValue é um par tipo de ação / valor agregado
type ActionValue struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// FindByType retorna o primeiro valor cujo tipo de ação está na lista permitida
func FindByType(values []ActionValue, allowed []string) (ActionValue, bool) {
	for _, v := range values {
		for _, t := range allowed {
			if v.ActionType == t {
				return v, true
			}
		}
	}
	return ActionValue{}, false
}
