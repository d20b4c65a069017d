package apiErrors

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/omniconnect-api/internal/domain"
)

// Códigos de erro expostos para o frontend
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_002" // Token inválido
	ErrExpiredToken       = "AUTH_003" // Token expirado

	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros das integrações (PRV)
	ErrProviderNotConfigured = "PRV_001" // Integração sem credenciais
	ErrProviderAuth          = "PRV_002" // Credenciais rejeitadas pelo provedor
	ErrProviderRejected      = "PRV_003" // Provedor retornou erro
	ErrProviderEmptyResult   = "PRV_004" // Provedor não retornou dados
	ErrProviderUnreachable   = "PRV_005" // Falha de rede com o provedor

	// Erros do servidor (SRV)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrStorage        = "SRV_002" // Erro de persistência
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrProviderNotConfigured: http.StatusPreconditionFailed,
	ErrProviderAuth:          http.StatusUnauthorized,
	ErrProviderRejected:      http.StatusBadGateway,
	ErrProviderEmptyResult:   http.StatusNotFound,
	ErrProviderUnreachable:   http.StatusServiceUnavailable,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrStorage:               http.StatusInternalServerError,
}

// Mapeamento da taxonomia de erros das integrações para códigos de API
var providerCodeMap = map[domain.ErrorKind]string{
	domain.ErrKindConfigurationMissing: ErrProviderNotConfigured,
	domain.ErrKindAuth:                 ErrProviderAuth,
	domain.ErrKindProvider:             ErrProviderRejected,
	domain.ErrKindEmptyResult:          ErrProviderEmptyResult,
	domain.ErrKindNetwork:              ErrProviderUnreachable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// WriteProviderError traduz um erro de integração para a resposta HTTP,
// preservando a mensagem amigável construída pelo adaptador
func WriteProviderError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	code, exists := providerCodeMap[kind]
	if !exists {
		WriteError(w, ErrInternalServer, err.Error(), nil)
		return
	}

	var details any
	if provider := domain.ProviderOf(err); provider != "" {
		details = map[string]any{"provider": provider}
	}

	WriteError(w, code, err.Error(), details)
}
