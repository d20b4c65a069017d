package messaging

import (
	"context"

	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// Messenger define o envio de mensagens pela integração do WhatsApp
type Messenger interface {
	// IsConfigured informa se a integração está pronta para envio
	IsConfigured(ctx context.Context) bool

	// SendMessage transmite uma mensagem de texto para o telefone informado
	SendMessage(ctx context.Context, toPhone string, text string) (*domain.MessageReceipt, error)
}
