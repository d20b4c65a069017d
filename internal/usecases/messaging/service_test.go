package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/whatsapp"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/internal/usecases/messaging/mocks"
	"go.uber.org/mock/gomock"
)

func newCRM(t *testing.T) (CRMService, *mocks.MockMessenger, whatsapp.ConversationStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	messenger := mocks.NewMockMessenger(ctrl)
	conversations := whatsapp.NewConversationStore(storage.NewMemoryStore())

	return NewService(messenger, conversations), messenger, conversations
}

func TestSend_SucessoRegistraMensagemEAtualizaContato(t *testing.T) {
	ctx := context.Background()
	service, messenger, conversations := newCRM(t)

	require.NoError(t, conversations.UpsertContact(ctx, domain.Contact{
		ID:    "c1",
		Name:  "Cliente",
		Phone: "5511999887766",
	}))

	messenger.EXPECT().
		SendMessage(gomock.Any(), "5511999887766", "Seu pedido saiu para entrega").
		Return(&domain.MessageReceipt{MessageID: "wamid.1", To: "5511999887766"}, nil)

	message, err := service.Send(ctx, "5511999887766", "Seu pedido saiu para entrega")
	require.NoError(t, err)

	assert.NotEmpty(t, message.ID)
	assert.Equal(t, domain.SenderUser, message.Sender)
	assert.Equal(t, domain.StatusSent, message.Status)

	history, err := conversations.GetHistory(ctx, "5511999887766")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Seu pedido saiu para entrega", history[0].Text)

	contacts, err := conversations.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Seu pedido saiu para entrega", contacts[0].LastMessage)
	assert.Equal(t, "Cliente", contacts[0].Name, "os demais campos do contato são preservados")
}

func TestSend_FalhaRegistraMensagemComStatusDeFalha(t *testing.T) {
	ctx := context.Background()
	service, messenger, conversations := newCRM(t)

	messenger.EXPECT().
		SendMessage(gomock.Any(), "5511999887766", "oi").
		Return(nil, domain.NewProviderError(domain.ProviderWhatsApp, domain.ErrKindProvider, "Meta API Error"))

	message, err := service.Send(ctx, "5511999887766", "oi")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindProvider))

	require.NotNil(t, message)
	assert.Equal(t, domain.StatusFailed, message.Status)

	history, err := conversations.GetHistory(ctx, "5511999887766")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusFailed, history[0].Status)
}

func TestSend_TelefoneDesconhecidoCriaContatoMinimo(t *testing.T) {
	ctx := context.Background()
	service, messenger, conversations := newCRM(t)

	messenger.EXPECT().
		SendMessage(gomock.Any(), "+55 48 9999-0000", "olá").
		Return(&domain.MessageReceipt{MessageID: "wamid.2"}, nil)

	_, err := service.Send(ctx, "+55 48 9999-0000", "olá")
	require.NoError(t, err)

	contacts, err := conversations.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "+55 48 9999-0000", contacts[0].Phone)
	assert.Equal(t, "olá", contacts[0].LastMessage)
	assert.NotEmpty(t, contacts[0].ID)
}

func TestSaveContact_GeraIDQuandoAusente(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCRM(t)

	saved, err := service.SaveContact(ctx, domain.Contact{Name: "Novo", Phone: "123"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	contacts, err := service.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, saved.ID, contacts[0].ID)
}
