package gaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

type Client interface {
	RunReport(ctx context.Context, cfg domain.GoogleConfig, request googledomain.RunReportRequest) (*googledomain.RunReportResponse, error)
	InvalidateToken()
}

// GoogleClient executa relatórios da Analytics Data API com token gerenciado.
// Cada instância possui seu próprio TokenManager: conjuntos de credenciais
// diferentes nunca compartilham estado de token.
type GoogleClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	httpClient   *http.Client
}

func NewClient(cfg *config.Config) Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &GoogleClient{
		Cfg:          cfg,
		TokenManager: NewTokenManager(cfg.Google.TokenURL, httpClient),
		httpClient:   httpClient,
	}
}

// InvalidateToken força a renovação do token na próxima chamada.
// Chamado quando a configuração do Google é salva ou removida.
func (c *GoogleClient) InvalidateToken() {
	c.TokenManager.Invalidate()
}

// RunReport executa um runReport autenticado. Uma resposta 401 força uma
// renovação de token e uma única repetição da chamada; um segundo 401 é
// propagado como falha de autenticação, sem novas tentativas.
func (c *GoogleClient) RunReport(ctx context.Context, cfg domain.GoogleConfig, request googledomain.RunReportRequest) (*googledomain.RunReportResponse, error) {
	token, err := c.TokenManager.Token(ctx, cfg)
	if err != nil {
		return nil, err
	}

	response, unauthorized, err := c.runReportOnce(ctx, cfg, request, token)
	if err != nil {
		return nil, err
	}
	if !unauthorized {
		return response, nil
	}

	logrus.Warn("google: relatório recusado com 401, renovando token e repetindo uma vez")

	token, err = c.TokenManager.ForceRefresh(ctx, cfg)
	if err != nil {
		return nil, err
	}

	response, unauthorized, err = c.runReportOnce(ctx, cfg, request, token)
	if err != nil {
		return nil, err
	}
	if unauthorized {
		c.TokenManager.Invalidate()
		return nil, domain.NewProviderError(domain.ProviderGoogle, domain.ErrKindAuth,
			"GA4 rejected the refreshed access token. Check your OAuth credentials.")
	}

	return response, nil
}

// runReportOnce faz uma única chamada. Retorna unauthorized=true para 401,
// deixando a decisão de repetir com o chamador.
func (c *GoogleClient) runReportOnce(ctx context.Context, cfg domain.GoogleConfig, request googledomain.RunReportRequest, token string) (*googledomain.RunReportResponse, bool, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, false, domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindProvider,
			"Failed to encode GA4 report request", err)
	}

	reportURL := fmt.Sprintf("%s/properties/%s:runReport", c.Cfg.Google.AnalyticsDataURL, cfg.PropertyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reportURL, bytes.NewReader(payload))
	if err != nil {
		return nil, false, domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindNetwork,
			"Failed to build GA4 report request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("google: erro ao chamar a Analytics Data API")
		return nil, false, domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindNetwork,
			"Failed to fetch GA4 report", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindNetwork,
			"Failed to read GA4 response", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, true, nil
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp googledomain.ErrorResponse
		message := "GA4 API Error"
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil && errorResp.Error.Message != "" {
			message = errorResp.Error.Message
		}

		logrus.WithFields(logrus.Fields{
			"status":      resp.StatusCode,
			"property_id": cfg.PropertyID,
			"error":       message,
		}).Error("google: resposta de erro da Analytics Data API")

		return nil, false, domain.NewProviderError(domain.ProviderGoogle, domain.ErrKindProvider, message)
	}

	var response googledomain.RunReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, false, domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindProvider,
			"Failed to decode GA4 report", err)
	}

	return &response, false, nil
}
