package messaging

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/whatsapp"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/pkg/utils"
)

// CRMService é a camada de orquestração do CRM do WhatsApp: envia mensagens
// e mantém contatos e histórico locais coerentes com o que foi enviado
type CRMService interface {
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	SaveContact(ctx context.Context, contact domain.Contact) (domain.Contact, error)
	GetHistory(ctx context.Context, phone string) ([]domain.ChatMessage, error)
	Send(ctx context.Context, toPhone string, text string) (*domain.ChatMessage, error)
}

type Service struct {
	messenger     Messenger
	conversations whatsapp.ConversationStore
}

func NewService(messenger Messenger, conversations whatsapp.ConversationStore) CRMService {
	return &Service{
		messenger:     messenger,
		conversations: conversations,
	}
}

func (s *Service) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.conversations.ListContacts(ctx)
}

// SaveContact persiste o contato, gerando um ID quando necessário
func (s *Service) SaveContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	if contact.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return domain.Contact{}, err
		}
		contact.ID = id
	}

	if err := s.conversations.UpsertContact(ctx, contact); err != nil {
		return domain.Contact{}, err
	}

	return contact, nil
}

func (s *Service) GetHistory(ctx context.Context, phone string) ([]domain.ChatMessage, error) {
	return s.conversations.GetHistory(ctx, phone)
}

// Send transmite a mensagem e registra o resultado no histórico local.
// Falhas de envio também são registradas, com status de falha, para que a
// conversa reflita o que o operador tentou enviar.
func (s *Service) Send(ctx context.Context, toPhone string, text string) (*domain.ChatMessage, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	message := domain.ChatMessage{
		ID:        id,
		Sender:    domain.SenderUser,
		Text:      text,
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    domain.StatusSent,
	}

	_, sendErr := s.messenger.SendMessage(ctx, toPhone, text)
	if sendErr != nil {
		message.Status = domain.StatusFailed
	}

	if err := s.conversations.AppendMessage(ctx, toPhone, message); err != nil {
		logrus.WithError(err).Error("messaging: falha ao registrar mensagem no histórico")
	}

	if sendErr != nil {
		return &message, sendErr
	}

	if err := s.updateContactPreview(ctx, toPhone, text); err != nil {
		logrus.WithError(err).Warn("messaging: falha ao atualizar o preview do contato")
	}

	return &message, nil
}

// updateContactPreview atualiza a última mensagem do contato, criando um
// contato mínimo quando o telefone ainda não está na lista
func (s *Service) updateContactPreview(ctx context.Context, phone string, text string) error {
	contacts, err := s.conversations.ListContacts(ctx)
	if err != nil {
		return err
	}

	for _, contact := range contacts {
		if contact.Phone == phone {
			contact.LastMessage = text
			return s.conversations.UpsertContact(ctx, contact)
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return err
	}

	return s.conversations.UpsertContact(ctx, domain.Contact{
		ID:          id,
		Name:        utils.NormalizePhone(phone),
		Phone:       phone,
		LastMessage: text,
	})
}
