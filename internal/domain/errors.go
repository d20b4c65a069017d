package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifica as falhas das integrações externas.
// Os consumidores devem ramificar pelo Kind, nunca pelo texto da mensagem.
type ErrorKind string

const (
	// ErrKindConfigurationMissing indica campos obrigatórios ausentes na configuração
	ErrKindConfigurationMissing ErrorKind = "configuration_missing"
	// ErrKindAuth indica token rejeitado ou falha na troca de tokens
	ErrKindAuth ErrorKind = "auth"
	// ErrKindProvider indica resposta não-2xx com mensagem do provedor
	ErrKindProvider ErrorKind = "provider"
	// ErrKindEmptyResult indica resposta bem-sucedida porém sem dados utilizáveis
	ErrKindEmptyResult ErrorKind = "empty_result"
	// ErrKindNetwork indica falha de transporte, sem resposta do provedor
	ErrKindNetwork ErrorKind = "network"
)

// ProviderError é o erro padronizado das integrações externas
type ProviderError struct {
	Provider Provider
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError cria um erro padronizado para uma integração
func NewProviderError(provider Provider, kind ErrorKind, message string) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Message: message}
}

// WrapProviderError cria um erro padronizado preservando a causa original
func WrapProviderError(provider Provider, kind ErrorKind, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Message: message, Err: err}
}

// IsKind verifica se o erro (ou qualquer erro da cadeia) tem a classificação informada
func IsKind(err error, kind ErrorKind) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// ProviderOf extrai a integração de origem do erro, ou vazio se não for um ProviderError
func ProviderOf(err error) Provider {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Provider
	}
	return ""
}

// KindOf extrai a classificação do erro, ou vazio se não for um ProviderError
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
