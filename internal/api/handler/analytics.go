package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/omniconnect-api/internal/usecases/insighting"
	"github.com/vfg2006/omniconnect-api/pkg/apiErrors"
	"github.com/vfg2006/omniconnect-api/pkg/log"
)

// GetAnalyticsTimeSeries retorna a série diária de tráfego e conversões do GA4.
// Sem credenciais configuradas a resposta é uma lista vazia.
func GetAnalyticsTimeSeries(service insighting.CombinedInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		points, err := service.GetTimeSeries(r.Context())
		if err != nil {
			logger.WithError(err).Warn("analytics: failed to get time series")
			apiErrors.WriteProviderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(points); err != nil {
			logger.WithError(err).Error("analytics: failed to encode response")
		}
	})
}

// GetAnalyticsLeads retorna as origens de leads ordenadas por sessões
func GetAnalyticsLeads(service insighting.CombinedInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		leads, err := service.GetLeadDetails(r.Context())
		if err != nil {
			logger.WithError(err).Warn("analytics: failed to get lead details")
			apiErrors.WriteProviderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(leads); err != nil {
			logger.WithError(err).Error("analytics: failed to encode response")
		}
	})
}
