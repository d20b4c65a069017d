package metadomain

// ErrorResponse representa a estrutura de erro da Graph API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da Graph API
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsAuthError verifica se o erro é de token inválido ou expirado.
// O código 190 representa problemas de token nas respostas da Graph API.
func (e *ErrorResponse) IsAuthError() bool {
	return e.Error.Code == 190
}

// IsInvalidAccount verifica se o erro é de conta de anúncios inválida (código 100)
func (e *ErrorResponse) IsInvalidAccount() bool {
	return e.Error.Code == 100
}
