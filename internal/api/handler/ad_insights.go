package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/omniconnect-api/internal/usecases/insighting"
	"github.com/vfg2006/omniconnect-api/pkg/apiErrors"
	"github.com/vfg2006/omniconnect-api/pkg/log"
)

// GetAdSetInsights retorna as métricas dos conjuntos de anúncios do Meta
// para a janela dos últimos 30 dias
func GetAdSetInsights(service insighting.CombinedInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		insights, err := service.GetAdSetInsights(r.Context())
		if err != nil {
			logger.WithError(err).Warn("insights: failed to get ad set insights")
			apiErrors.WriteProviderError(w, err)
			return
		}

		logger.WithField("ad_sets", len(insights)).Info("insights: ad set insights retrieved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insights); err != nil {
			logger.WithError(err).Error("insights: failed to encode response")
		}
	})
}
