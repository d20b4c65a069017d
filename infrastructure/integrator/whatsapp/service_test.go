package whatsapp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/whatsapp/waclient"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

func newIntegrator(t *testing.T, handler http.HandlerFunc) (*WhatsAppIntegrator, credentials.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		WhatsApp: config.WhatsApp{GraphURL: server.URL, Version: "v21.0"},
	}

	kv := storage.NewMemoryStore()
	credStore := credentials.NewStore(kv)

	return New(credStore, waclient.NewClient(cfg), NewConversationStore(kv)), credStore
}

func configureWhatsApp(t *testing.T, credStore credentials.Store) {
	t.Helper()

	_, err := credStore.SaveWhatsApp(context.Background(), domain.WhatsAppConfig{
		PhoneNumberID: "1099999",
		AccessToken:   "wa-token",
	})
	require.NoError(t, err)
}

func TestSendMessage_NormalizaTelefoneEMontaPayload(t *testing.T) {
	var receivedPath, receivedAuth string
	var receivedBody map[string]interface{}

	service, credStore := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedAuth = r.Header.Get("Authorization")

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &receivedBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages": [{"id": "wamid.ABC123"}]}`))
	})
	configureWhatsApp(t, credStore)

	receipt, err := service.SendMessage(context.Background(), "+1 (555) 123-4567", "Olá, tudo bem?")
	require.NoError(t, err)

	assert.Equal(t, "/v21.0/1099999/messages", receivedPath)
	assert.Equal(t, "Bearer wa-token", receivedAuth)

	// Apenas dígitos devem ser transmitidos
	assert.Equal(t, "15551234567", receivedBody["to"])
	assert.Equal(t, "whatsapp", receivedBody["messaging_product"])
	assert.Equal(t, "individual", receivedBody["recipient_type"])
	assert.Equal(t, "text", receivedBody["type"])
	assert.Equal(t, map[string]interface{}{"body": "Olá, tudo bem?"}, receivedBody["text"])

	assert.Equal(t, "wamid.ABC123", receipt.MessageID)
	assert.Equal(t, "15551234567", receipt.To)
}

func TestSendMessage_ErroDoProvedorCarregaAMensagem(t *testing.T) {
	service, credStore := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Recipient phone number not in allowed list", "code": 131030}}`))
	})
	configureWhatsApp(t, credStore)

	_, err := service.SendMessage(context.Background(), "5511999887766", "teste")
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.ErrKindProvider))
	assert.Contains(t, err.Error(), "Recipient phone number not in allowed list")
}

func TestSendMessage_ErroComContentTypeJSONCarregaAMensagem(t *testing.T) {
	service, credStore := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Error validating access token", "code": 190}}`))
	})
	configureWhatsApp(t, credStore)

	_, err := service.SendMessage(context.Background(), "5511999887766", "teste")
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.ErrKindProvider))
	assert.Contains(t, err.Error(), "Error validating access token")
}

func TestSendMessage_ErroSemMensagemViraGenerico(t *testing.T) {
	service, credStore := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})
	configureWhatsApp(t, credStore)

	_, err := service.SendMessage(context.Background(), "5511999887766", "teste")
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.ErrKindProvider))
	assert.Contains(t, err.Error(), "Meta API Error")
}

func TestSendMessage_SemConfiguracao(t *testing.T) {
	called := false
	service, _ := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	assert.False(t, service.IsConfigured(context.Background()))

	_, err := service.SendMessage(context.Background(), "5511999887766", "teste")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindConfigurationMissing))
	assert.False(t, called, "não deve haver chamada de rede sem configuração")
}
