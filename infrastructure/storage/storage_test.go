package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/internal/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("Get de chave inexistente retorna ausente", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "missing")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Set e Get fazem round-trip do valor", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "omni_facebook_config", `{"ad_account_id":"act_1"}`))

		value, ok, err := store.Get(ctx, "omni_facebook_config")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"ad_account_id":"act_1"}`, value)
	})

	t.Run("Set sobrescreve o valor anterior", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "key", "v1"))
		require.NoError(t, store.Set(ctx, "key", "v2"))

		value, ok, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v2", value)
	})

	t.Run("Delete remove a chave", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", "value"))
		require.NoError(t, store.Delete(ctx, "gone"))

		_, ok, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete de chave inexistente não falha", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-existed"))
	})
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "omniconnect.db"))
	require.NoError(t, err)
	defer store.Close()

	t.Run("Round-trip e sobrescrita", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "omni_whatsapp_contacts", "[]"))
		require.NoError(t, store.Set(ctx, "omni_whatsapp_contacts", `[{"phone":"55"}]`))

		value, ok, err := store.Get(ctx, "omni_whatsapp_contacts")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"phone":"55"}]`, value)
	})

	t.Run("Chave removida fica ausente", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "temp", "x"))
		require.NoError(t, store.Delete(ctx, "temp"))

		_, ok, err := store.Get(ctx, "temp")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNew_DriverDesconhecido(t *testing.T) {
	_, err := New(context.Background(), config.Storage{Driver: "redis"})
	assert.Error(t, err)
}
