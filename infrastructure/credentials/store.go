package credentials

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store persiste as configurações de cada provedor sob chaves lógicas fixas.
// Um valor armazenado que não pode ser decodificado é tratado como ausente,
// nunca como falha: o comportamento é refazer a configuração, não travar o painel.
type Store interface {
	SaveMeta(ctx context.Context, cfg domain.MetaConfig) (domain.MetaConfig, error)
	GetMeta(ctx context.Context) (domain.MetaConfig, bool)
	SaveGoogle(ctx context.Context, cfg domain.GoogleConfig) (domain.GoogleConfig, error)
	GetGoogle(ctx context.Context) (domain.GoogleConfig, bool)
	SaveWhatsApp(ctx context.Context, cfg domain.WhatsAppConfig) (domain.WhatsAppConfig, error)
	GetWhatsApp(ctx context.Context) (domain.WhatsAppConfig, bool)
	IsConfigured(ctx context.Context, provider domain.Provider) bool
	Clear(ctx context.Context, provider domain.Provider) error
}

type store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) Store {
	return &store{kv: kv}
}

// SaveMeta normaliza o identificador da conta antes de persistir: a Graph API
// exige o prefixo "act_", que é prependado exatamente uma vez
func (s *store) SaveMeta(ctx context.Context, cfg domain.MetaConfig) (domain.MetaConfig, error) {
	id := strings.TrimSpace(cfg.AdAccountID)
	if id != "" && !strings.HasPrefix(id, "act_") {
		id = "act_" + id
	}
	cfg.AdAccountID = id

	if err := s.save(ctx, storage.KeyMetaConfig, cfg); err != nil {
		return domain.MetaConfig{}, err
	}

	return cfg, nil
}

func (s *store) GetMeta(ctx context.Context) (domain.MetaConfig, bool) {
	var cfg domain.MetaConfig
	if !s.load(ctx, storage.KeyMetaConfig, &cfg) {
		return domain.MetaConfig{}, false
	}
	return cfg, true
}

func (s *store) SaveGoogle(ctx context.Context, cfg domain.GoogleConfig) (domain.GoogleConfig, error) {
	if err := s.save(ctx, storage.KeyGoogleConfig, cfg); err != nil {
		return domain.GoogleConfig{}, err
	}
	return cfg, nil
}

func (s *store) GetGoogle(ctx context.Context) (domain.GoogleConfig, bool) {
	var cfg domain.GoogleConfig
	if !s.load(ctx, storage.KeyGoogleConfig, &cfg) {
		return domain.GoogleConfig{}, false
	}
	return cfg, true
}

func (s *store) SaveWhatsApp(ctx context.Context, cfg domain.WhatsAppConfig) (domain.WhatsAppConfig, error) {
	if err := s.save(ctx, storage.KeyWhatsAppConfig, cfg); err != nil {
		return domain.WhatsAppConfig{}, err
	}
	return cfg, nil
}

func (s *store) GetWhatsApp(ctx context.Context) (domain.WhatsAppConfig, bool) {
	var cfg domain.WhatsAppConfig
	if !s.load(ctx, storage.KeyWhatsAppConfig, &cfg) {
		return domain.WhatsAppConfig{}, false
	}
	return cfg, true
}

// IsConfigured verifica se todos os campos obrigatórios do provedor estão preenchidos
func (s *store) IsConfigured(ctx context.Context, provider domain.Provider) bool {
	switch provider {
	case domain.ProviderMeta:
		cfg, ok := s.GetMeta(ctx)
		return ok && cfg.Configured()
	case domain.ProviderGoogle:
		cfg, ok := s.GetGoogle(ctx)
		return ok && cfg.Configured()
	case domain.ProviderWhatsApp:
		cfg, ok := s.GetWhatsApp(ctx)
		return ok && cfg.Configured()
	}
	return false
}

// Clear remove a configuração persistida do provedor
func (s *store) Clear(ctx context.Context, provider domain.Provider) error {
	switch provider {
	case domain.ProviderMeta:
		return s.kv.Delete(ctx, storage.KeyMetaConfig)
	case domain.ProviderGoogle:
		return s.kv.Delete(ctx, storage.KeyGoogleConfig)
	case domain.ProviderWhatsApp:
		return s.kv.Delete(ctx, storage.KeyWhatsAppConfig)
	}
	return fmt.Errorf("provedor desconhecido: %q", provider)
}

func (s *store) save(ctx context.Context, key string, cfg interface{}) error {
	raw, err := json.MarshalToString(cfg)
	if err != nil {
		return fmt.Errorf("erro ao serializar configuração: %w", err)
	}

	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("erro ao persistir configuração: %w", err)
	}

	return nil
}

// load retorna falso para chave ausente, erro de leitura ou JSON inválido
func (s *store) load(ctx context.Context, key string, out interface{}) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return false
	}

	if err := json.UnmarshalFromString(raw, out); err != nil {
		return false
	}

	return true
}
