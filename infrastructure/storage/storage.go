package storage

import (
	"context"
	"fmt"

	"github.com/vfg2006/omniconnect-api/internal/config"
)

// Chaves lógicas fixas sob as quais o estado do dashboard é persistido
const (
	KeyMetaConfig       = "omni_facebook_config"
	KeyGoogleConfig     = "omni_google_config"
	KeyWhatsAppConfig   = "omni_whatsapp_config"
	KeyWhatsAppContacts = "omni_whatsapp_contacts"
	KeyWhatsAppHistory  = "omni_whatsapp_history"
)

// Store é a abstração de chave-valor usada para todo o estado persistido
// (configurações de provedores, contatos e histórico de mensagens).
// Os valores são documentos JSON serializados.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New cria o Store conforme o driver configurado
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("driver de armazenamento desconhecido: %q", cfg.Driver)
	}
}
