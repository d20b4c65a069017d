package googledomain

// RunReportRequest é o corpo da chamada runReport da Analytics Data API (GA4)
type RunReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions"`
	Metrics    []Metric    `json:"metrics"`
	OrderBys   []OrderBy   `json:"orderBys,omitempty"`
	Limit      int64       `json:"limit,omitempty"`
}

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Dimension struct {
	Name string `json:"name"`
}

type Metric struct {
	Name string `json:"name"`
}

type OrderBy struct {
	Dimension *DimensionOrderBy `json:"dimension,omitempty"`
	Metric    *MetricOrderBy    `json:"metric,omitempty"`
	Desc      bool              `json:"desc"`
}

type DimensionOrderBy struct {
	DimensionName string `json:"dimensionName"`
}

type MetricOrderBy struct {
	MetricName string `json:"metricName"`
}

// RunReportResponse é a resposta do runReport. Apenas as linhas interessam.
type RunReportResponse struct {
	Rows []Row `json:"rows"`
}

type Row struct {
	DimensionValues []Value `json:"dimensionValues"`
	MetricValues    []Value `json:"metricValues"`
}

type Value struct {
	Value string `json:"value"`
}

// Dimension retorna o valor da dimensão na posição i, ou vazio se ausente
func (r Row) Dimension(i int) string {
	if i < 0 || i >= len(r.DimensionValues) {
		return ""
	}
	return r.DimensionValues[i].Value
}

// Metric retorna o valor da métrica na posição i, ou vazio se ausente
func (r Row) Metric(i int) string {
	if i < 0 || i >= len(r.MetricValues) {
		return ""
	}
	return r.MetricValues[i].Value
}

// ErrorResponse é a estrutura de erro da Analytics Data API
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// TokenErrorResponse é a estrutura de erro do endpoint OAuth de troca de tokens
type TokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
