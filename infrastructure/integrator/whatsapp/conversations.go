package whatsapp

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConversationStore persiste os contatos do CRM e o histórico de mensagens
// por telefone. Operações puramente locais, sem chamadas de rede.
type ConversationStore interface {
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	UpsertContact(ctx context.Context, contact domain.Contact) error
	GetHistory(ctx context.Context, phone string) ([]domain.ChatMessage, error)
	AppendMessage(ctx context.Context, phone string, message domain.ChatMessage) error
}

type conversationStore struct {
	kv storage.Store
}

func NewConversationStore(kv storage.Store) ConversationStore {
	return &conversationStore{kv: kv}
}

// ListContacts retorna os contatos na ordem em que foram adicionados.
// Estado ausente ou corrompido é tratado como lista vazia.
func (s *conversationStore) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyWhatsAppContacts)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar contatos: %w", err)
	}

	contacts := []domain.Contact{}
	if ok {
		if err := json.UnmarshalFromString(raw, &contacts); err != nil {
			return []domain.Contact{}, nil
		}
	}

	return contacts, nil
}

// UpsertContact substitui o contato com o mesmo telefone, preservando a
// posição dos demais; sem correspondência, o contato é adicionado ao final
func (s *conversationStore) UpsertContact(ctx context.Context, contact domain.Contact) error {
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range contacts {
		if contacts[i].Phone == contact.Phone {
			contacts[i] = contact
			replaced = true
			break
		}
	}
	if !replaced {
		contacts = append(contacts, contact)
	}

	return s.persist(ctx, storage.KeyWhatsAppContacts, contacts)
}

// GetHistory retorna as mensagens do telefone na ordem de inserção
func (s *conversationStore) GetHistory(ctx context.Context, phone string) ([]domain.ChatMessage, error) {
	history, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	messages, ok := history[phone]
	if !ok {
		return []domain.ChatMessage{}, nil
	}

	return messages, nil
}

// AppendMessage adiciona a mensagem ao final do histórico do telefone,
// criando o histórico na primeira mensagem. Sem deduplicação.
func (s *conversationStore) AppendMessage(ctx context.Context, phone string, message domain.ChatMessage) error {
	history, err := s.loadHistory(ctx)
	if err != nil {
		return err
	}

	history[phone] = append(history[phone], message)

	return s.persist(ctx, storage.KeyWhatsAppHistory, history)
}

func (s *conversationStore) loadHistory(ctx context.Context) (map[string][]domain.ChatMessage, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyWhatsAppHistory)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar histórico: %w", err)
	}

	history := map[string][]domain.ChatMessage{}
	if ok {
		if err := json.UnmarshalFromString(raw, &history); err != nil {
			return map[string][]domain.ChatMessage{}, nil
		}
	}

	return history, nil
}

func (s *conversationStore) persist(ctx context.Context, key string, value interface{}) error {
	raw, err := json.MarshalToString(value)
	if err != nil {
		return fmt.Errorf("erro ao serializar estado: %w", err)
	}

	return s.kv.Set(ctx, key, raw)
}
