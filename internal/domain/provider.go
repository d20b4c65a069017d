package domain

// Provider identifica uma integração externa suportada pelo dashboard
type Provider string

const (
	ProviderMeta     Provider = "meta"
	ProviderGoogle   Provider = "google"
	ProviderWhatsApp Provider = "whatsapp"
)

// Providers lista todas as integrações conhecidas, na ordem exibida no painel
var Providers = []Provider{ProviderMeta, ProviderGoogle, ProviderWhatsApp}

// Valid verifica se o provider é um dos conhecidos
func (p Provider) Valid() bool {
	switch p {
	case ProviderMeta, ProviderGoogle, ProviderWhatsApp:
		return true
	}
	return false
}

// MetaConfig contém as credenciais da conta de anúncios do Meta
type MetaConfig struct {
	AdAccountID string `json:"ad_account_id"`
	AccessToken string `json:"access_token"`
}

// Configured retorna verdadeiro se todos os campos obrigatórios estão preenchidos
func (c MetaConfig) Configured() bool {
	return c.AdAccountID != "" && c.AccessToken != ""
}

// GoogleConfig contém as credenciais OAuth do Google Analytics
type GoogleConfig struct {
	PropertyID   string `json:"property_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

func (c GoogleConfig) Configured() bool {
	return c.PropertyID != "" && c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// WhatsAppConfig contém as credenciais da API Cloud do WhatsApp.
// O BusinessAccountID é armazenado, mas não é exigido para envio de mensagens.
type WhatsAppConfig struct {
	PhoneNumberID     string `json:"phone_number_id"`
	AccessToken       string `json:"access_token"`
	BusinessAccountID string `json:"business_account_id"`
}

func (c WhatsAppConfig) Configured() bool {
	return c.PhoneNumberID != "" && c.AccessToken != ""
}

// ConnectionStatus representa a prontidão de uma integração para a tela de conexões
type ConnectionStatus struct {
	Provider   Provider `json:"provider"`
	Configured bool     `json:"configured"`
}
