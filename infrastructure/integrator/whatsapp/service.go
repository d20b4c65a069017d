package whatsapp

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/whatsapp/waclient"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/pkg/utils"
)

// WhatsAppIntegrator combina o envio pela API Cloud com a persistência
// local de contatos e histórico
type WhatsAppIntegrator struct {
	credStore     credentials.Store
	Client        waclient.Client
	Conversations ConversationStore
}

func New(credStore credentials.Store, client waclient.Client, conversations ConversationStore) *WhatsAppIntegrator {
	return &WhatsAppIntegrator{
		credStore:     credStore,
		Client:        client,
		Conversations: conversations,
	}
}

// IsConfigured informa se o envio de mensagens está pronto para uso
func (s *WhatsAppIntegrator) IsConfigured(ctx context.Context) bool {
	return s.credStore.IsConfigured(ctx, domain.ProviderWhatsApp)
}

// SendMessage envia uma mensagem de texto para o telefone informado.
// O número é normalizado para apenas dígitos antes da transmissão.
func (s *WhatsAppIntegrator) SendMessage(ctx context.Context, toPhone string, text string) (*domain.MessageReceipt, error) {
	cfg, ok := s.credStore.GetWhatsApp(ctx)
	if !ok || !cfg.Configured() {
		return nil, domain.NewProviderError(domain.ProviderWhatsApp, domain.ErrKindConfigurationMissing,
			"WhatsApp API not configured. Please enter your credentials.")
	}

	cleanPhone := utils.NormalizePhone(toPhone)

	receipt, err := s.Client.SendText(ctx, cfg, cleanPhone, text)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"to":    cleanPhone,
			"error": err.Error(),
		}).Error("whatsapp: falha ao enviar mensagem")
		return nil, err
	}

	return receipt, nil
}

// Operações locais do CRM, delegadas ao ConversationStore

func (s *WhatsAppIntegrator) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.Conversations.ListContacts(ctx)
}

func (s *WhatsAppIntegrator) UpsertContact(ctx context.Context, contact domain.Contact) error {
	return s.Conversations.UpsertContact(ctx, contact)
}

func (s *WhatsAppIntegrator) GetHistory(ctx context.Context, phone string) ([]domain.ChatMessage, error) {
	return s.Conversations.GetHistory(ctx, phone)
}

func (s *WhatsAppIntegrator) AppendMessage(ctx context.Context, phone string, message domain.ChatMessage) error {
	return s.Conversations.AppendMessage(ctx, phone, message)
}
