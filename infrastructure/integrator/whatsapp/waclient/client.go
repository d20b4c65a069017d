package waclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	SendText(ctx context.Context, cfg domain.WhatsAppConfig, toPhone string, text string) (*domain.MessageReceipt, error)
}

// WhatsAppClient envia mensagens pela API Cloud do WhatsApp (Graph API)
type WhatsAppClient struct {
	Cfg   *config.Config
	resty *resty.Client
}

func NewClient(cfg *config.Config) Client {
	return &WhatsAppClient{
		Cfg:   cfg,
		resty: resty.New().SetTimeout(30 * time.Second),
	}
}

type sendMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type textPayload struct {
	Body string `json:"body"`
}

type sendMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText envia uma única mensagem de texto. O telefone de destino já deve
// estar normalizado (apenas dígitos). Sem retry: falhas são propagadas.
func (c *WhatsAppClient) SendText(ctx context.Context, cfg domain.WhatsAppConfig, toPhone string, text string) (*domain.MessageReceipt, error) {
	url := fmt.Sprintf("%s/%s/messages", c.Cfg.WhatsApp.URL(), cfg.PhoneNumberID)

	payload := sendMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               toPhone,
		Type:             "text",
		Text:             textPayload{Body: text},
	}

	var result sendMessageResponse
	var apiError errorResponse

	resp, err := c.resty.R().
		SetContext(ctx).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&result).
		SetError(&apiError).
		Post(url)
	if err != nil {
		logrus.WithError(err).Error("whatsapp: erro de transporte ao enviar mensagem")
		return nil, domain.WrapProviderError(domain.ProviderWhatsApp, domain.ErrKindNetwork,
			"Network Error: Failed to reach Meta Servers", err)
	}

	if resp.IsError() {
		message := apiError.Error.Message

		// O resty só decodifica SetError quando a resposta vem com
		// Content-Type JSON; a Graph API nem sempre o envia em erros
		if message == "" {
			if jsonErr := json.Unmarshal(resp.Body(), &apiError); jsonErr == nil {
				message = apiError.Error.Message
			}
		}

		if message == "" {
			message = "Meta API Error: Check your Token or Phone ID"
		}

		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode(),
			"to":     toPhone,
			"error":  message,
		}).Error("whatsapp: a Graph API recusou o envio")

		return nil, domain.NewProviderError(domain.ProviderWhatsApp, domain.ErrKindProvider, message)
	}

	receipt := &domain.MessageReceipt{To: toPhone}
	if len(result.Messages) > 0 {
		receipt.MessageID = result.Messages[0].ID
	}

	logrus.WithFields(logrus.Fields{
		"to":         toPhone,
		"message_id": receipt.MessageID,
	}).Debug("whatsapp: mensagem aceita pela Graph API")

	return receipt, nil
}
