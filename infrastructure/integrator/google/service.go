package google

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	googledomain "github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/pkg/utils"
)

const leadDetailsLimit = 15

// GoogleIntegrator expõe os relatórios do GA4 já normalizados para o dashboard
type GoogleIntegrator struct {
	credStore credentials.Store
	Client    gaclient.Client
}

func New(credStore credentials.Store, client gaclient.Client) *GoogleIntegrator {
	return &GoogleIntegrator{
		credStore: credStore,
		Client:    client,
	}
}

// IsConfigured informa se a propriedade do GA4 está pronta para consulta
func (s *GoogleIntegrator) IsConfigured(ctx context.Context) bool {
	return s.credStore.IsConfigured(ctx, domain.ProviderGoogle)
}

// InvalidateToken descarta o access token em cache. Deve ser chamado sempre
// que a configuração do Google é salva ou removida.
func (s *GoogleIntegrator) InvalidateToken() {
	s.Client.InvalidateToken()
}

// GetTimeSeries retorna a série diária de usuários ativos e conversões dos
// últimos 30 dias, em ordem cronológica. Sem configuração, degrada para uma
// lista vazia em vez de falhar.
func (s *GoogleIntegrator) GetTimeSeries(ctx context.Context) ([]domain.AnalyticsPoint, error) {
	cfg, ok := s.credStore.GetGoogle(ctx)
	if !ok || !cfg.Configured() {
		return []domain.AnalyticsPoint{}, nil
	}

	request := googledomain.RunReportRequest{
		DateRanges: []googledomain.DateRange{{StartDate: "30daysAgo", EndDate: "today"}},
		Dimensions: []googledomain.Dimension{{Name: "date"}},
		Metrics:    []googledomain.Metric{{Name: "activeUsers"}, {Name: "conversions"}},
		OrderBys: []googledomain.OrderBy{
			{Dimension: &googledomain.DimensionOrderBy{DimensionName: "date"}, Desc: false},
		},
	}

	response, err := s.Client.RunReport(ctx, cfg, request)
	if err != nil {
		logrus.WithError(err).Error("google: falha ao buscar a série temporal")
		return nil, err
	}

	points := make([]domain.AnalyticsPoint, 0, len(response.Rows))
	for _, row := range response.Rows {
		points = append(points, domain.AnalyticsPoint{
			Name:        utils.FormatReportDate(row.Dimension(0)),
			Traffic:     parseMetric(row.Metric(0)),
			Conversions: parseMetric(row.Metric(1)),
		})
	}

	return points, nil
}

// GetLeadDetails retorna as origens de leads quebradas por data, origem,
// mídia e campanha, ordenadas por sessões, limitadas a uma página fixa.
// Sem configuração, degrada para uma lista vazia.
func (s *GoogleIntegrator) GetLeadDetails(ctx context.Context) ([]domain.LeadDetail, error) {
	cfg, ok := s.credStore.GetGoogle(ctx)
	if !ok || !cfg.Configured() {
		return []domain.LeadDetail{}, nil
	}

	request := googledomain.RunReportRequest{
		DateRanges: []googledomain.DateRange{{StartDate: "30daysAgo", EndDate: "today"}},
		Dimensions: []googledomain.Dimension{
			{Name: "date"},
			{Name: "sessionSource"},
			{Name: "sessionMedium"},
			{Name: "sessionCampaignName"},
		},
		Metrics: []googledomain.Metric{{Name: "sessions"}, {Name: "activeUsers"}, {Name: "conversions"}},
		OrderBys: []googledomain.OrderBy{
			{Metric: &googledomain.MetricOrderBy{MetricName: "sessions"}, Desc: true},
		},
		Limit: leadDetailsLimit,
	}

	response, err := s.Client.RunReport(ctx, cfg, request)
	if err != nil {
		logrus.WithError(err).Error("google: falha ao buscar o detalhamento de leads")
		return nil, err
	}

	leads := make([]domain.LeadDetail, 0, len(response.Rows))
	for _, row := range response.Rows {
		leads = append(leads, domain.LeadDetail{
			Date:        utils.FormatReportDate(row.Dimension(0)),
			Source:      row.Dimension(1),
			Medium:      row.Dimension(2),
			Campaign:    row.Dimension(3),
			Sessions:    parseMetric(row.Metric(0)),
			Users:       parseMetric(row.Metric(1)),
			Conversions: parseMetric(row.Metric(2)),
		})
	}

	return leads, nil
}

func parseMetric(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
