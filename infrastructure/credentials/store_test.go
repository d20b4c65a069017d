package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

func TestSaveMeta_NormalizacaoDoAccountID(t *testing.T) {
	tests := []struct {
		name       string
		adAccount  string
		expectedID string
	}{
		{
			name:       "ID sem prefixo recebe act_ exatamente uma vez",
			adAccount:  "123456789",
			expectedID: "act_123456789",
		},
		{
			name:       "ID já prefixado permanece igual",
			adAccount:  "act_123456789",
			expectedID: "act_123456789",
		},
		{
			name:       "Espaços são removidos antes da normalização",
			adAccount:  "  987654  ",
			expectedID: "act_987654",
		},
		{
			name:       "ID vazio não recebe prefixo",
			adAccount:  "",
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(storage.NewMemoryStore())

			saved, err := store.SaveMeta(ctx, domain.MetaConfig{
				AdAccountID: tt.adAccount,
				AccessToken: "token",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, saved.AdAccountID)

			// O valor persistido deve ser o normalizado
			got, ok := store.GetMeta(ctx)
			require.True(t, ok)
			assert.Equal(t, tt.expectedID, got.AdAccountID)
		})
	}
}

func TestSaveMeta_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryStore())

	first, err := store.SaveMeta(ctx, domain.MetaConfig{AdAccountID: "42", AccessToken: "t"})
	require.NoError(t, err)

	second, err := store.SaveMeta(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "act_42", second.AdAccountID)
}

func TestIsConfigured(t *testing.T) {
	ctx := context.Background()

	t.Run("Falso quando nunca foi salvo", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		assert.False(t, store.IsConfigured(ctx, domain.ProviderMeta))
		assert.False(t, store.IsConfigured(ctx, domain.ProviderGoogle))
		assert.False(t, store.IsConfigured(ctx, domain.ProviderWhatsApp))
	})

	t.Run("Falso quando falta campo obrigatório", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())

		_, err := store.SaveGoogle(ctx, domain.GoogleConfig{
			PropertyID: "123",
			ClientID:   "client",
			// ClientSecret e RefreshToken ausentes
		})
		require.NoError(t, err)

		assert.False(t, store.IsConfigured(ctx, domain.ProviderGoogle))
	})

	t.Run("Verdadeiro quando todos os campos obrigatórios estão presentes", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())

		_, err := store.SaveGoogle(ctx, domain.GoogleConfig{
			PropertyID:   "123",
			ClientID:     "client",
			ClientSecret: "secret",
			RefreshToken: "refresh",
		})
		require.NoError(t, err)

		assert.True(t, store.IsConfigured(ctx, domain.ProviderGoogle))
	})

	t.Run("BusinessAccountID não é obrigatório para o WhatsApp", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())

		_, err := store.SaveWhatsApp(ctx, domain.WhatsAppConfig{
			PhoneNumberID: "555",
			AccessToken:   "token",
		})
		require.NoError(t, err)

		assert.True(t, store.IsConfigured(ctx, domain.ProviderWhatsApp))
	})

	t.Run("Falso após Clear", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())

		_, err := store.SaveWhatsApp(ctx, domain.WhatsAppConfig{
			PhoneNumberID: "555",
			AccessToken:   "token",
		})
		require.NoError(t, err)
		require.True(t, store.IsConfigured(ctx, domain.ProviderWhatsApp))

		require.NoError(t, store.Clear(ctx, domain.ProviderWhatsApp))
		assert.False(t, store.IsConfigured(ctx, domain.ProviderWhatsApp))

		_, ok := store.GetWhatsApp(ctx)
		assert.False(t, ok)
	})
}

func TestGet_JSONCorrompidoTratadoComoAusente(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := NewStore(kv)

	require.NoError(t, kv.Set(ctx, storage.KeyMetaConfig, "{not-json"))

	_, ok := store.GetMeta(ctx)
	assert.False(t, ok)
	assert.False(t, store.IsConfigured(ctx, domain.ProviderMeta))
}
