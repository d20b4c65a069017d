package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/omniconnect-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// Campos solicitados ao endpoint de insights, no nível de conjunto de anúncios
const insightFields = "adset_name,spend,clicks,impressions,actions,action_values"

type Client interface {
	GetAdSetInsights(ctx context.Context, cfg domain.MetaConfig) ([]metadomain.AdSetRow, error)
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type responseAdSetInsights struct {
	Data []metadomain.AdSetRow `json:"data"`
}

// GetAdSetInsights busca os insights de todos os conjuntos de anúncios da conta
// para a janela fixa dos últimos 30 dias. Não há retry: erros da Graph API são
// traduzidos e propagados imediatamente.
func (c *MetaClient) GetAdSetInsights(ctx context.Context, cfg domain.MetaConfig) ([]metadomain.AdSetRow, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL(), cfg.AdAccountID)

	params := url.Values{}
	params.Add("level", "adset")
	params.Add("fields", insightFields)
	params.Add("date_preset", "last_30d")
	params.Add("access_token", cfg.AccessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logrus.WithError(err).Error("meta: erro ao criar a requisição")
		return nil, domain.WrapProviderError(domain.ProviderMeta, domain.ErrKindNetwork,
			"Network Error: failed to build Meta request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("meta: erro ao fazer a requisição")
		return nil, domain.WrapProviderError(domain.ProviderMeta, domain.ErrKindNetwork,
			"Network Error: failed to reach Meta servers", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapProviderError(domain.ProviderMeta, domain.ErrKindNetwork,
			"Network Error: failed to read Meta response", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, translateError(resp.StatusCode, body)
	}

	var response responseAdSetInsights
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("meta: erro ao decodificar JSON")
		return nil, domain.WrapProviderError(domain.ProviderMeta, domain.ErrKindProvider,
			"Failed to decode Meta Ads Manager response", err)
	}

	return response.Data, nil
}

// translateError converte o corpo de erro da Graph API para a taxonomia interna
func translateError(status int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil {
		switch {
		case errorResp.IsAuthError():
			return domain.NewProviderError(domain.ProviderMeta, domain.ErrKindAuth,
				"Invalid or expired access token. Please provide a new System User Token.")
		case errorResp.IsInvalidAccount():
			return domain.NewProviderError(domain.ProviderMeta, domain.ErrKindProvider,
				"Invalid ad account identifier. Ensure it starts with 'act_'.")
		case errorResp.Error.Message != "":
			return domain.NewProviderError(domain.ProviderMeta, domain.ErrKindProvider, errorResp.Error.Message)
		}
	}

	logrus.WithFields(logrus.Fields{
		"status": status,
		"body":   string(body),
	}).Error("meta: resposta de erro da Graph API")

	return domain.NewProviderError(domain.ProviderMeta, domain.ErrKindProvider,
		"Failed to connect to Meta Ads Manager.")
}
