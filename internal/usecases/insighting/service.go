package insighting

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

type Service struct {
	ads        AdsInsighter
	analytics  AnalyticsInsighter
	summarizer Summarizer
}

func NewService(
	ads AdsInsighter,
	analytics AnalyticsInsighter,
	summarizer Summarizer,
) CombinedInsighter {
	return &Service{
		ads:        ads,
		analytics:  analytics,
		summarizer: summarizer,
	}
}

func (s *Service) GetAdSetInsights(ctx context.Context) ([]domain.AdSetInsight, error) {
	return s.ads.GetAdSetInsights(ctx)
}

func (s *Service) GetTimeSeries(ctx context.Context) ([]domain.AnalyticsPoint, error) {
	return s.analytics.GetTimeSeries(ctx)
}

func (s *Service) GetLeadDetails(ctx context.Context) ([]domain.LeadDetail, error) {
	return s.analytics.GetLeadDetails(ctx)
}

// businessSnapshot agrega os dados disponíveis de todos os provedores para
// servir de contexto ao resumo de IA
type businessSnapshot struct {
	Analytics []domain.AnalyticsPoint `json:"analytics"`
	Ads       []domain.AdSetInsight   `json:"ads"`
}

// GetBusinessInsights monta um retrato dos dados de tráfego e de anúncios e
// pede ao resumidor três insights acionáveis. Provedores sem credenciais ou
// com falha entram no retrato como listas vazias: o resumo usa o que houver.
func (s *Service) GetBusinessInsights(ctx context.Context) ([]domain.BusinessInsight, error) {
	if !s.summarizer.IsConfigured() {
		return nil, domain.NewProviderError("gemini", domain.ErrKindConfigurationMissing,
			"AI summaries are unavailable. Please configure your Gemini API key.")
	}

	snapshot := businessSnapshot{
		Analytics: []domain.AnalyticsPoint{},
		Ads:       []domain.AdSetInsight{},
	}

	if points, err := s.analytics.GetTimeSeries(ctx); err != nil {
		logrus.WithError(err).Warn("insighting: série do analytics indisponível para o resumo")
	} else {
		snapshot.Analytics = points
	}

	if s.ads.IsConfigured(ctx) {
		if insights, err := s.ads.GetAdSetInsights(ctx); err != nil {
			logrus.WithError(err).Warn("insighting: métricas de anúncios indisponíveis para o resumo")
		} else {
			snapshot.Ads = insights
		}
	}

	return s.summarizer.GetBusinessInsights(ctx, snapshot)
}

// GetMarketingStrategy pede ao resumidor a escolha do conjunto de anúncios
// vencedor. Diferente do resumo de negócio, a estratégia exige métricas de
// anúncios reais: erros do Meta são propagados ao chamador.
func (s *Service) GetMarketingStrategy(ctx context.Context) (*domain.AdStrategy, error) {
	if !s.summarizer.IsConfigured() {
		return nil, domain.NewProviderError("gemini", domain.ErrKindConfigurationMissing,
			"AI summaries are unavailable. Please configure your Gemini API key.")
	}

	insights, err := s.ads.GetAdSetInsights(ctx)
	if err != nil {
		return nil, err
	}

	return s.summarizer.GetMarketingStrategy(ctx, insights)
}
