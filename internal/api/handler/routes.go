package handler

import (
	"net/http"

	"github.com/vfg2006/omniconnect-api/internal/api/handler/router"
	"github.com/vfg2006/omniconnect-api/internal/usecases/authenticating"
	"github.com/vfg2006/omniconnect-api/internal/usecases/connecting"
	"github.com/vfg2006/omniconnect-api/internal/usecases/insighting"
	"github.com/vfg2006/omniconnect-api/internal/usecases/messaging"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
		},
	}
}

// Connections retorna as rotas da tela de conexões do painel
func Connections(service connecting.ConnectionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/connections",
			Method:  http.MethodGet,
			Handler: GetConnections(service),
		},
		{
			Path:    "/v1/connections/:provider",
			Method:  http.MethodPut,
			Handler: SaveConnection(service),
		},
		{
			Path:    "/v1/connections/:provider",
			Method:  http.MethodDelete,
			Handler: DeleteConnection(service),
		},
	}
}

func Insights(service insighting.CombinedInsighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ads/insights",
			Method:  http.MethodGet,
			Handler: GetAdSetInsights(service),
		},
		{
			Path:    "/v1/analytics/timeseries",
			Method:  http.MethodGet,
			Handler: GetAnalyticsTimeSeries(service),
		},
		{
			Path:    "/v1/analytics/leads",
			Method:  http.MethodGet,
			Handler: GetAnalyticsLeads(service),
		},
		{
			Path:    "/v1/insights/business",
			Method:  http.MethodGet,
			Handler: GetBusinessInsights(service),
		},
		{
			Path:    "/v1/insights/strategy",
			Method:  http.MethodGet,
			Handler: GetMarketingStrategy(service),
		},
	}
}

// CRM retorna as rotas do CRM do WhatsApp
func CRM(service messaging.CRMService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/crm/contacts",
			Method:  http.MethodGet,
			Handler: ListContacts(service),
		},
		{
			Path:    "/v1/crm/contacts",
			Method:  http.MethodPost,
			Handler: SaveContact(service),
		},
		{
			Path:    "/v1/crm/contacts/:phone/messages",
			Method:  http.MethodGet,
			Handler: GetMessageHistory(service),
		},
		{
			Path:    "/v1/crm/messages",
			Method:  http.MethodPost,
			Handler: SendMessage(service),
		},
	}
}
