package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/internal/usecases/connecting"
	"github.com/vfg2006/omniconnect-api/pkg/apiErrors"
	"github.com/vfg2006/omniconnect-api/pkg/log"
)

// GetConnections reporta o estado de configuração de todas as integrações
func GetConnections(service connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		statuses := service.Status(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statuses); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("connections: failed to encode response")
		}
	})
}

// SaveConnection grava as credenciais da integração indicada na URL.
// O corpo da requisição varia conforme o provedor.
func SaveConnection(service connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		provider := domain.Provider(httprouter.ParamsFromContext(r.Context()).ByName("provider"))
		if !provider.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Integração desconhecida", map[string]any{
				"provider": provider,
			})
			return
		}

		var saved any
		var err error

		switch provider {
		case domain.ProviderMeta:
			var cfg domain.MetaConfig
			if decodeErr := json.NewDecoder(r.Body).Decode(&cfg); decodeErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
			saved, err = service.SaveMeta(r.Context(), cfg)

		case domain.ProviderGoogle:
			var cfg domain.GoogleConfig
			if decodeErr := json.NewDecoder(r.Body).Decode(&cfg); decodeErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
			saved, err = service.SaveGoogle(r.Context(), cfg)

		case domain.ProviderWhatsApp:
			var cfg domain.WhatsAppConfig
			if decodeErr := json.NewDecoder(r.Body).Decode(&cfg); decodeErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
			saved, err = service.SaveWhatsApp(r.Context(), cfg)
		}

		if err != nil {
			logger.WithError(err).WithField("provider", provider).Error("connections: failed to save credentials")
			apiErrors.WriteError(w, apiErrors.ErrStorage, "Erro ao salvar credenciais", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(saved); err != nil {
			logger.WithError(err).Error("connections: failed to encode response")
		}
	})
}

// DeleteConnection remove as credenciais da integração indicada na URL
func DeleteConnection(service connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider := domain.Provider(httprouter.ParamsFromContext(r.Context()).ByName("provider"))
		if !provider.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Integração desconhecida", map[string]any{
				"provider": provider,
			})
			return
		}

		if err := service.Disconnect(r.Context(), provider); err != nil {
			log.ForContext(r.Context()).WithError(err).
				WithField("provider", provider).
				Error("connections: failed to disconnect provider")

			apiErrors.WriteError(w, apiErrors.ErrStorage, "Erro ao desconectar integração", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
