package insighting

import (
	"context"

	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// AdsInsighter define o acesso às métricas de anúncios do Meta
type AdsInsighter interface {
	IsConfigured(ctx context.Context) bool

	// GetAdSetInsights retorna as métricas derivadas dos conjuntos de anúncios
	// dos últimos 30 dias
	GetAdSetInsights(ctx context.Context) ([]domain.AdSetInsight, error)
}

// AnalyticsInsighter define o acesso aos relatórios do Google Analytics
type AnalyticsInsighter interface {
	IsConfigured(ctx context.Context) bool

	// GetTimeSeries retorna a série diária de tráfego e conversões
	GetTimeSeries(ctx context.Context) ([]domain.AnalyticsPoint, error)

	// GetLeadDetails retorna as origens de leads ordenadas por sessões
	GetLeadDetails(ctx context.Context) ([]domain.LeadDetail, error)
}

// Summarizer define a geração de resumos estruturados por IA
type Summarizer interface {
	IsConfigured() bool
	GetBusinessInsights(ctx context.Context, data interface{}) ([]domain.BusinessInsight, error)
	GetMarketingStrategy(ctx context.Context, insights []domain.AdSetInsight) (*domain.AdStrategy, error)
}

// CombinedInsighter agrega as métricas de todos os provedores e os resumos
// de IA consumidos pelas telas do dashboard
type CombinedInsighter interface {
	GetAdSetInsights(ctx context.Context) ([]domain.AdSetInsight, error)
	GetTimeSeries(ctx context.Context) ([]domain.AnalyticsPoint, error)
	GetLeadDetails(ctx context.Context) ([]domain.LeadDetail, error)
	GetBusinessInsights(ctx context.Context) ([]domain.BusinessInsight, error)
	GetMarketingStrategy(ctx context.Context) (*domain.AdStrategy, error)
}
