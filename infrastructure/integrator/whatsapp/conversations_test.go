package whatsapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

func TestUpsertContact(t *testing.T) {
	ctx := context.Background()

	t.Run("Substitui o contato com o mesmo telefone preservando a ordem dos demais", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		require.NoError(t, store.UpsertContact(ctx, domain.Contact{ID: "1", Name: "Ana", Phone: "111"}))
		require.NoError(t, store.UpsertContact(ctx, domain.Contact{ID: "2", Name: "Bruno", Phone: "222"}))
		require.NoError(t, store.UpsertContact(ctx, domain.Contact{ID: "3", Name: "Clara", Phone: "333"}))

		require.NoError(t, store.UpsertContact(ctx, domain.Contact{ID: "2b", Name: "Bruno Silva", Phone: "222"}))

		contacts, err := store.ListContacts(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 3)
		assert.Equal(t, "111", contacts[0].Phone)
		assert.Equal(t, "222", contacts[1].Phone)
		assert.Equal(t, "Bruno Silva", contacts[1].Name)
		assert.Equal(t, "333", contacts[2].Phone)
	})

	t.Run("Contatos com nomes iguais e telefones diferentes permanecem distintos", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		require.NoError(t, store.UpsertContact(ctx, domain.Contact{ID: "1", Name: "Maria", Phone: "555"}))
		require.NoError(t, store.UpsertContact(ctx, domain.Contact{ID: "2", Name: "Maria", Phone: "666"}))

		contacts, err := store.ListContacts(ctx)
		require.NoError(t, err)
		assert.Len(t, contacts, 2)
	})

	t.Run("Lista vazia quando nada foi salvo", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		contacts, err := store.ListContacts(ctx)
		require.NoError(t, err)
		assert.Empty(t, contacts)
	})
}

func TestAppendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Primeira mensagem cria o histórico do telefone", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		message := domain.ChatMessage{ID: "m1", Sender: domain.SenderUser, Text: "Olá"}
		require.NoError(t, store.AppendMessage(ctx, "5511999", message))

		history, err := store.GetHistory(ctx, "5511999")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "Olá", history[0].Text)
	})

	t.Run("Appends sucessivos preservam a ordem de inserção", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		for _, text := range []string{"primeira", "segunda", "terceira"} {
			require.NoError(t, store.AppendMessage(ctx, "777", domain.ChatMessage{Text: text}))
		}

		history, err := store.GetHistory(ctx, "777")
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, "primeira", history[0].Text)
		assert.Equal(t, "segunda", history[1].Text)
		assert.Equal(t, "terceira", history[2].Text)
	})

	t.Run("Históricos de telefones diferentes são independentes", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		require.NoError(t, store.AppendMessage(ctx, "111", domain.ChatMessage{Text: "para o primeiro"}))
		require.NoError(t, store.AppendMessage(ctx, "222", domain.ChatMessage{Text: "para o segundo"}))

		history, err := store.GetHistory(ctx, "111")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "para o primeiro", history[0].Text)
	})

	t.Run("Histórico de telefone desconhecido é vazio", func(t *testing.T) {
		store := NewConversationStore(storage.NewMemoryStore())

		history, err := store.GetHistory(ctx, "000")
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestListContacts_JSONCorrompidoViraListaVazia(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := NewConversationStore(kv)

	require.NoError(t, kv.Set(ctx, storage.KeyWhatsAppContacts, "{broken"))

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
