package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"github.com/vfg2006/omniconnect-api/internal/usecases/messaging"
	"github.com/vfg2006/omniconnect-api/pkg/apiErrors"
	"github.com/vfg2006/omniconnect-api/pkg/log"
)

type SendMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// ListContacts retorna os contatos do CRM na ordem de inserção
func ListContacts(service messaging.CRMService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		contacts, err := service.ListContacts(r.Context())
		if err != nil {
			logger.WithError(err).Error("crm: failed to list contacts")
			apiErrors.WriteError(w, apiErrors.ErrStorage, "Erro ao carregar contatos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(contacts); err != nil {
			logger.WithError(err).Error("crm: failed to encode response")
		}
	})
}

// SaveContact cria ou atualiza um contato do CRM
func SaveContact(service messaging.CRMService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var contact domain.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if contact.Phone == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Telefone do contato é obrigatório", nil)
			return
		}

		saved, err := service.SaveContact(r.Context(), contact)
		if err != nil {
			logger.WithError(err).Error("crm: failed to save contact")
			apiErrors.WriteError(w, apiErrors.ErrStorage, "Erro ao salvar contato", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(saved); err != nil {
			logger.WithError(err).Error("crm: failed to encode response")
		}
	})
}

// GetMessageHistory retorna o histórico de conversa com o telefone da URL
func GetMessageHistory(service messaging.CRMService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		phone := httprouter.ParamsFromContext(r.Context()).ByName("phone")

		history, err := service.GetHistory(r.Context(), phone)
		if err != nil {
			logger.WithError(err).WithField("phone", phone).Error("crm: failed to get message history")
			apiErrors.WriteError(w, apiErrors.ErrStorage, "Erro ao carregar histórico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(history); err != nil {
			logger.WithError(err).Error("crm: failed to encode response")
		}
	})
}

// SendMessage envia uma mensagem de texto pelo WhatsApp e registra o
// resultado no histórico local. Falhas de envio ficam registradas como
// mensagens com status failed.
func SendMessage(service messaging.CRMService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.To == "" || req.Text == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Destinatário e texto são obrigatórios", nil)
			return
		}

		message, err := service.Send(r.Context(), req.To, req.Text)
		if err != nil {
			logger.WithError(err).WithField("to", req.To).Warn("crm: message delivery failed")
			apiErrors.WriteProviderError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"to":         req.To,
			"message_id": message.ID,
		}).Info("crm: message sent")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(message); err != nil {
			logger.WithError(err).Error("crm: failed to encode response")
		}
	})
}
