package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/omniconnect-api/internal/usecases/insighting"
	"github.com/vfg2006/omniconnect-api/pkg/apiErrors"
	"github.com/vfg2006/omniconnect-api/pkg/log"
)

// GetBusinessInsights retorna os insights de negócio gerados pela IA
// a partir dos dados agregados de tráfego e anúncios
func GetBusinessInsights(service insighting.CombinedInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		insights, err := service.GetBusinessInsights(r.Context())
		if err != nil {
			logger.WithError(err).Warn("summaries: failed to generate business insights")
			apiErrors.WriteProviderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insights); err != nil {
			logger.WithError(err).Error("summaries: failed to encode response")
		}
	})
}

// GetMarketingStrategy retorna a recomendação estratégica da IA sobre os
// conjuntos de anúncios ativos
func GetMarketingStrategy(service insighting.CombinedInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		strategy, err := service.GetMarketingStrategy(r.Context())
		if err != nil {
			logger.WithError(err).Warn("summaries: failed to generate marketing strategy")
			apiErrors.WriteProviderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(strategy); err != nil {
			logger.WithError(err).Error("summaries: failed to encode response")
		}
	})
}
