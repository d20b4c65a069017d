package connecting

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// TokenInvalidator descarta tokens de acesso em cache de um provedor.
// Trocar ou remover credenciais sempre invalida o token correspondente.
type TokenInvalidator interface {
	InvalidateToken()
}

// ConnectionService orquestra a configuração das integrações para a tela
// de conexões do painel
type ConnectionService interface {
	Status(ctx context.Context) []domain.ConnectionStatus
	SaveMeta(ctx context.Context, cfg domain.MetaConfig) (domain.MetaConfig, error)
	SaveGoogle(ctx context.Context, cfg domain.GoogleConfig) (domain.GoogleConfig, error)
	SaveWhatsApp(ctx context.Context, cfg domain.WhatsAppConfig) (domain.WhatsAppConfig, error)
	Disconnect(ctx context.Context, provider domain.Provider) error
}

type Service struct {
	credStore    credentials.Store
	googleTokens TokenInvalidator
}

func NewService(credStore credentials.Store, googleTokens TokenInvalidator) ConnectionService {
	return &Service{
		credStore:    credStore,
		googleTokens: googleTokens,
	}
}

// Status reporta a prontidão de todas as integrações, na ordem do painel
func (s *Service) Status(ctx context.Context) []domain.ConnectionStatus {
	statuses := make([]domain.ConnectionStatus, 0, len(domain.Providers))
	for _, provider := range domain.Providers {
		statuses = append(statuses, domain.ConnectionStatus{
			Provider:   provider,
			Configured: s.credStore.IsConfigured(ctx, provider),
		})
	}
	return statuses
}

func (s *Service) SaveMeta(ctx context.Context, cfg domain.MetaConfig) (domain.MetaConfig, error) {
	saved, err := s.credStore.SaveMeta(ctx, cfg)
	if err != nil {
		return domain.MetaConfig{}, err
	}

	logrus.WithField("account_id", saved.AdAccountID).Info("connections: configuração do Meta salva")
	return saved, nil
}

// SaveGoogle persiste as credenciais e invalida o access token em cache:
// um token obtido com a credencial anterior não vale para a nova
func (s *Service) SaveGoogle(ctx context.Context, cfg domain.GoogleConfig) (domain.GoogleConfig, error) {
	saved, err := s.credStore.SaveGoogle(ctx, cfg)
	if err != nil {
		return domain.GoogleConfig{}, err
	}

	s.googleTokens.InvalidateToken()

	logrus.WithField("property_id", saved.PropertyID).Info("connections: configuração do Google salva")
	return saved, nil
}

func (s *Service) SaveWhatsApp(ctx context.Context, cfg domain.WhatsAppConfig) (domain.WhatsAppConfig, error) {
	saved, err := s.credStore.SaveWhatsApp(ctx, cfg)
	if err != nil {
		return domain.WhatsAppConfig{}, err
	}

	logrus.WithField("phone_number_id", saved.PhoneNumberID).Info("connections: configuração do WhatsApp salva")
	return saved, nil
}

// Disconnect remove as credenciais persistidas do provedor
func (s *Service) Disconnect(ctx context.Context, provider domain.Provider) error {
	if err := s.credStore.Clear(ctx, provider); err != nil {
		return err
	}

	if provider == domain.ProviderGoogle {
		s.googleTokens.InvalidateToken()
	}

	logrus.WithField("provider", provider).Info("connections: integração desconectada")
	return nil
}
