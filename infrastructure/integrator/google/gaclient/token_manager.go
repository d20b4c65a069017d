package gaclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// TokenManager guarda o access token do Google Analytics obtido via troca de
// refresh token. O token não tem expiração rastreada: ele vive até ser
// invalidado por uma resposta 401 ou por uma troca de credenciais.
//
// O mutex serializa renovações concorrentes: uma renovação disparada por uma
// chamada nunca compete destrutivamente com outra.
type TokenManager struct {
	tokenURL   string
	httpClient *http.Client

	mu    sync.Mutex
	token string
	// credencial que obteve o token atual. Se a configuração salva mudar,
	// o token em cache deixa de valer.
	cfg domain.GoogleConfig
}

func NewTokenManager(tokenURL string, httpClient *http.Client) *TokenManager {
	return &TokenManager{
		tokenURL:   tokenURL,
		httpClient: httpClient,
	}
}

// Token retorna o access token em cache, renovando antes se o cache está
// vazio ou se pertence a outra credencial
func (tm *TokenManager) Token(ctx context.Context, cfg domain.GoogleConfig) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.token != "" && tm.cfg == cfg {
		return tm.token, nil
	}

	return tm.refresh(ctx, cfg)
}

// ForceRefresh descarta o token atual e executa uma nova troca de refresh token
func (tm *TokenManager) ForceRefresh(ctx context.Context, cfg domain.GoogleConfig) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.token = ""
	return tm.refresh(ctx, cfg)
}

// Invalidate esvazia o cache. A próxima chamada renova o token.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.token = ""
	tm.cfg = domain.GoogleConfig{}
}

// refresh troca {client_id, client_secret, refresh_token} por um access token.
// Deve ser chamado com o mutex já adquirido.
func (tm *TokenManager) refresh(ctx context.Context, cfg domain.GoogleConfig) (string, error) {
	form := url.Values{}
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)
	form.Set("refresh_token", cfg.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindNetwork,
			"OAuth Token Refresh Failed", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("google: erro na troca de refresh token")
		return "", domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindNetwork,
			"OAuth Token Refresh Failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindNetwork,
			"OAuth Token Refresh Failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		var tokenErr googledomain.TokenErrorResponse
		message := "Auth refresh failed. Check your Client ID, Secret, and Refresh Token."
		if jsonErr := json.Unmarshal(body, &tokenErr); jsonErr == nil && tokenErr.ErrorDescription != "" {
			message = tokenErr.ErrorDescription
		}

		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"error":  message,
		}).Error("google: endpoint de token recusou a renovação")

		return "", domain.NewProviderError(domain.ProviderGoogle, domain.ErrKindAuth, message)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", domain.WrapProviderError(domain.ProviderGoogle, domain.ErrKindAuth,
			"OAuth Token Refresh Failed", err)
	}

	if tokenResp.AccessToken == "" {
		return "", domain.NewProviderError(domain.ProviderGoogle, domain.ErrKindAuth,
			"Token returned by the OAuth endpoint is empty")
	}

	tm.token = tokenResp.AccessToken
	tm.cfg = cfg

	logrus.Debug("google: access token renovado com sucesso")
	return tm.token, nil
}
