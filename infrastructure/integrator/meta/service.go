package meta

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	metadomain "github.com/vfg2006/omniconnect-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/pkg/utils"
)

// Tipos de ação contados como conversão e como valor de conversão.
// Listas fixas: outras ações da Graph API são ignoradas nas métricas.
var (
	conversionActionTypes = []string{"lead", "purchase", "offsite_conversion.fb_pixel_lead", "contact"}
	valueActionTypes      = []string{"lead", "purchase", "offsite_conversion.fb_pixel_lead"}
)

// MetaIntegrator expõe os insights de anúncios do Meta já normalizados
type MetaIntegrator struct {
	credStore credentials.Store
	Client    metaclient.Client
}

func New(credStore credentials.Store, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		credStore: credStore,
		Client:    client,
	}
}

// IsConfigured informa se a conta de anúncios está pronta para consulta
func (s *MetaIntegrator) IsConfigured(ctx context.Context) bool {
	return s.credStore.IsConfigured(ctx, domain.ProviderMeta)
}

// GetAdSetInsights busca e deriva as métricas de todos os conjuntos de anúncios
// dos últimos 30 dias. Resultado vazio é tratado como erro utilizável, não como
// sucesso sem dados.
func (s *MetaIntegrator) GetAdSetInsights(ctx context.Context) ([]domain.AdSetInsight, error) {
	cfg, ok := s.credStore.GetMeta(ctx)
	if !ok || !cfg.Configured() {
		return nil, domain.NewProviderError(domain.ProviderMeta, domain.ErrKindConfigurationMissing,
			"Credentials missing. Please configure your Ad Account ID and Access Token.")
	}

	rows, err := s.Client.GetAdSetInsights(ctx, cfg)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": cfg.AdAccountID,
			"error":      err.Error(),
		}).Error("meta: falha ao buscar insights dos conjuntos de anúncios")
		return nil, err
	}

	insights := make([]domain.AdSetInsight, 0, len(rows))
	for _, row := range rows {
		insights = append(insights, buildInsight(row))
	}

	if len(insights) == 0 {
		return nil, domain.NewProviderError(domain.ProviderMeta, domain.ErrKindEmptyResult,
			"No active ad sets found in this account for the last 30 days.")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": cfg.AdAccountID,
		"ad_sets":    len(insights),
	}).Debug("meta: insights dos conjuntos de anúncios obtidos com sucesso")

	return insights, nil
}

// buildInsight deriva as métricas de uma linha bruta da Graph API.
// Custo por conversão e ROI são definidos como 0 quando o denominador é 0.
func buildInsight(row metadomain.AdSetRow) domain.AdSetInsight {
	spend := parseFloat(row.Spend)
	clicks := parseInt(row.Clicks)
	impressions := parseInt(row.Impressions)

	conversions := 0
	if action, ok := metadomain.FindByType(row.Actions, conversionActionTypes); ok {
		conversions = parseInt(action.Value)
	}

	totalValue := 0.0
	if value, ok := metadomain.FindByType(row.ActionValues, valueActionTypes); ok {
		totalValue = parseFloat(value.Value)
	}

	costPerConv := 0.0
	if conversions > 0 {
		costPerConv = utils.RoundWithTwoDecimalPlace(spend / float64(conversions))
	}

	roi := 0.0
	if spend > 0 {
		roi = utils.RoundWithTwoDecimalPlace(totalValue / spend)
	}

	return domain.AdSetInsight{
		Name:        row.AdSetName,
		Spend:       spend,
		Clicks:      clicks,
		Impressions: impressions,
		Conversions: conversions,
		CostPerConv: costPerConv,
		ROI:         roi,
	}
}

func parseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithField("value", raw).Warn("meta: erro ao converter métrica para float")
		return 0
	}

	return value
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		logrus.WithField("value", raw).Warn("meta: erro ao converter métrica para inteiro")
		return 0
	}

	return value
}
