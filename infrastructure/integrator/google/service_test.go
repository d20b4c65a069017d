package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	googledomain "github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// fakeGA simula o endpoint OAuth e a Analytics Data API no mesmo servidor
type fakeGA struct {
	t *testing.T

	refreshCalls int
	reportCalls  int

	// respostas do endpoint de token, consumidas em ordem; a última se repete
	tokenResponses []tokenResponse
	// status das respostas de relatório, consumidos em ordem; o último se repete
	reportStatuses []int

	lastReportBody  googledomain.RunReportRequest
	lastBearerToken string
	reportRows      string
}

type tokenResponse struct {
	status int
	body   string
}

func (f *fakeGA) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			f.refreshCalls++
			resp := f.tokenResponses[min(f.refreshCalls-1, len(f.tokenResponses)-1)]
			w.WriteHeader(resp.status)
			w.Write([]byte(resp.body))
		default:
			f.reportCalls++
			f.lastBearerToken = r.Header.Get("Authorization")

			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &f.lastReportBody)

			status := f.reportStatuses[min(f.reportCalls-1, len(f.reportStatuses)-1)]
			w.WriteHeader(status)
			if status == http.StatusOK {
				w.Write([]byte(f.reportRows))
			}
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func newService(t *testing.T, fake *fakeGA, configured bool) *GoogleIntegrator {
	t.Helper()

	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Google: config.Google{
			TokenURL:         server.URL + "/token",
			AnalyticsDataURL: server.URL + "/v1beta",
		},
	}

	credStore := credentials.NewStore(storage.NewMemoryStore())
	if configured {
		_, err := credStore.SaveGoogle(context.Background(), domain.GoogleConfig{
			PropertyID:   "prop-1",
			ClientID:     "client",
			ClientSecret: "secret",
			RefreshToken: "refresh",
		})
		require.NoError(t, err)
	}

	return New(credStore, gaclient.NewClient(cfg))
}

func okToken() tokenResponse {
	return tokenResponse{status: http.StatusOK, body: `{"access_token": "fresh-token"}`}
}

func TestGetTimeSeries_RenovaTokenUmaVezAntesDoRelatorio(t *testing.T) {
	fake := &fakeGA{
		t:              t,
		tokenResponses: []tokenResponse{okToken()},
		reportStatuses: []int{http.StatusOK},
		reportRows: `{"rows": [
			{"dimensionValues": [{"value": "20240105"}], "metricValues": [{"value": "120"}, {"value": "8"}]},
			{"dimensionValues": [{"value": "20240106"}], "metricValues": [{"value": "95"}, {"value": "3"}]}
		]}`,
	}
	service := newService(t, fake, true)

	points, err := service.GetTimeSeries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fake.refreshCalls, "exatamente uma renovação antes do primeiro relatório")
	assert.Equal(t, 1, fake.reportCalls)
	assert.Equal(t, "Bearer fresh-token", fake.lastBearerToken)

	require.Len(t, points, 2)
	assert.Equal(t, domain.AnalyticsPoint{Name: "Jan 5", Traffic: 120, Conversions: 8}, points[0])
	assert.Equal(t, domain.AnalyticsPoint{Name: "Jan 6", Traffic: 95, Conversions: 3}, points[1])
}

func TestGetTimeSeries_TokenEmCacheNaoRenovaDeNovo(t *testing.T) {
	fake := &fakeGA{
		t:              t,
		tokenResponses: []tokenResponse{okToken()},
		reportStatuses: []int{http.StatusOK},
		reportRows:     `{"rows": []}`,
	}
	service := newService(t, fake, true)

	_, err := service.GetTimeSeries(context.Background())
	require.NoError(t, err)
	_, err = service.GetTimeSeries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fake.refreshCalls, "a segunda chamada reutiliza o token em cache")
	assert.Equal(t, 2, fake.reportCalls)
}

func TestGetTimeSeries_401ForcaRenovacaoERepeteUmaVez(t *testing.T) {
	fake := &fakeGA{
		t:              t,
		tokenResponses: []tokenResponse{okToken()},
		reportStatuses: []int{http.StatusUnauthorized, http.StatusOK},
		reportRows:     `{"rows": [{"dimensionValues": [{"value": "20240110"}], "metricValues": [{"value": "10"}, {"value": "1"}]}]}`,
	}
	service := newService(t, fake, true)

	points, err := service.GetTimeSeries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, fake.refreshCalls, "uma renovação inicial e uma forçada pelo 401")
	assert.Equal(t, 2, fake.reportCalls, "a chamada é repetida exatamente uma vez")
	require.Len(t, points, 1)
	assert.Equal(t, "Jan 10", points[0].Name)
}

func TestGetTimeSeries_Segundo401EhFalhaDura(t *testing.T) {
	fake := &fakeGA{
		t:              t,
		tokenResponses: []tokenResponse{okToken()},
		reportStatuses: []int{http.StatusUnauthorized, http.StatusUnauthorized},
	}
	service := newService(t, fake, true)

	_, err := service.GetTimeSeries(context.Background())
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.ErrKindAuth))
	assert.Equal(t, 2, fake.reportCalls, "sem terceira tentativa após o segundo 401")
	assert.Equal(t, 2, fake.refreshCalls)
}

func TestGetTimeSeries_FalhaNaTrocaDeTokenViraAuthError(t *testing.T) {
	fake := &fakeGA{
		t: t,
		tokenResponses: []tokenResponse{{
			status: http.StatusBadRequest,
			body:   `{"error": "invalid_grant", "error_description": "Token has been expired or revoked."}`,
		}},
	}
	service := newService(t, fake, true)

	_, err := service.GetTimeSeries(context.Background())
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.ErrKindAuth))
	assert.Contains(t, err.Error(), "Token has been expired or revoked.")
	assert.Equal(t, 0, fake.reportCalls, "o relatório não é tentado sem token")
}

func TestGetTimeSeries_SemConfiguracaoDegradaParaListaVazia(t *testing.T) {
	fake := &fakeGA{t: t, tokenResponses: []tokenResponse{okToken()}, reportStatuses: []int{http.StatusOK}}
	service := newService(t, fake, false)

	assert.False(t, service.IsConfigured(context.Background()))

	points, err := service.GetTimeSeries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Equal(t, 0, fake.refreshCalls)
	assert.Equal(t, 0, fake.reportCalls)
}

func TestGetLeadDetails_CorpoDaRequisicaoEMapeamento(t *testing.T) {
	fake := &fakeGA{
		t:              t,
		tokenResponses: []tokenResponse{okToken()},
		reportStatuses: []int{http.StatusOK},
		reportRows: `{"rows": [
			{
				"dimensionValues": [{"value": "20240105"}, {"value": "google"}, {"value": "cpc"}, {"value": "verao"}],
				"metricValues": [{"value": "300"}, {"value": "250"}, {"value": "12"}]
			}
		]}`,
	}
	service := newService(t, fake, true)

	leads, err := service.GetLeadDetails(context.Background())
	require.NoError(t, err)

	// A requisição deve pedir as quatro dimensões, ordenar por sessões
	// decrescentes e limitar à página fixa
	require.Len(t, fake.lastReportBody.Dimensions, 4)
	assert.Equal(t, "sessionSource", fake.lastReportBody.Dimensions[1].Name)
	require.Len(t, fake.lastReportBody.OrderBys, 1)
	require.NotNil(t, fake.lastReportBody.OrderBys[0].Metric)
	assert.Equal(t, "sessions", fake.lastReportBody.OrderBys[0].Metric.MetricName)
	assert.True(t, fake.lastReportBody.OrderBys[0].Desc)
	assert.Equal(t, int64(15), fake.lastReportBody.Limit)

	require.Len(t, leads, 1)
	assert.Equal(t, domain.LeadDetail{
		Date:        "Jan 5",
		Source:      "google",
		Medium:      "cpc",
		Campaign:    "verao",
		Sessions:    300,
		Users:       250,
		Conversions: 12,
	}, leads[0])
}

func TestGetLeadDetails_SemConfiguracaoDegradaParaListaVazia(t *testing.T) {
	fake := &fakeGA{t: t, tokenResponses: []tokenResponse{okToken()}, reportStatuses: []int{http.StatusOK}}
	service := newService(t, fake, false)

	leads, err := service.GetLeadDetails(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestInvalidateToken_ProximaChamadaRenova(t *testing.T) {
	fake := &fakeGA{
		t:              t,
		tokenResponses: []tokenResponse{okToken()},
		reportStatuses: []int{http.StatusOK},
		reportRows:     `{"rows": []}`,
	}
	service := newService(t, fake, true)

	_, err := service.GetTimeSeries(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fake.refreshCalls)

	service.InvalidateToken()

	_, err = service.GetTimeSeries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.refreshCalls, "após invalidação o token é renovado de novo")
}
