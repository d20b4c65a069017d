package connecting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateToken() {
	f.calls++
}

func newService(t *testing.T) (ConnectionService, *fakeInvalidator) {
	t.Helper()

	invalidator := &fakeInvalidator{}
	service := NewService(credentials.NewStore(storage.NewMemoryStore()), invalidator)
	return service, invalidator
}

func TestStatus_ReportaProntidaoPorProvedor(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	statuses := service.Status(ctx)
	require.Len(t, statuses, 3)
	for _, status := range statuses {
		assert.False(t, status.Configured)
	}

	_, err := service.SaveWhatsApp(ctx, domain.WhatsAppConfig{PhoneNumberID: "1", AccessToken: "t"})
	require.NoError(t, err)

	statuses = service.Status(ctx)
	byProvider := map[domain.Provider]bool{}
	for _, status := range statuses {
		byProvider[status.Provider] = status.Configured
	}
	assert.False(t, byProvider[domain.ProviderMeta])
	assert.False(t, byProvider[domain.ProviderGoogle])
	assert.True(t, byProvider[domain.ProviderWhatsApp])
}

func TestSaveMeta_RetornaConfiguracaoNormalizada(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	saved, err := service.SaveMeta(ctx, domain.MetaConfig{AdAccountID: "999", AccessToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "act_999", saved.AdAccountID)
}

func TestSaveGoogle_InvalidaTokenEmCache(t *testing.T) {
	ctx := context.Background()
	service, invalidator := newService(t)

	_, err := service.SaveGoogle(ctx, domain.GoogleConfig{
		PropertyID: "p", ClientID: "c", ClientSecret: "s", RefreshToken: "r",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, invalidator.calls)
}

func TestDisconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("Desconectar o Google limpa credenciais e token", func(t *testing.T) {
		service, invalidator := newService(t)

		_, err := service.SaveGoogle(ctx, domain.GoogleConfig{
			PropertyID: "p", ClientID: "c", ClientSecret: "s", RefreshToken: "r",
		})
		require.NoError(t, err)

		require.NoError(t, service.Disconnect(ctx, domain.ProviderGoogle))

		assert.Equal(t, 2, invalidator.calls, "uma invalidação no save e outra no disconnect")
		for _, status := range service.Status(ctx) {
			assert.False(t, status.Configured)
		}
	})

	t.Run("Desconectar outros provedores não toca no token do Google", func(t *testing.T) {
		service, invalidator := newService(t)

		_, err := service.SaveMeta(ctx, domain.MetaConfig{AdAccountID: "1", AccessToken: "t"})
		require.NoError(t, err)

		require.NoError(t, service.Disconnect(ctx, domain.ProviderMeta))
		assert.Equal(t, 0, invalidator.calls)
	})
}
