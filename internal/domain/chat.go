package domain

// MessageSender identifica o remetente de uma mensagem da conversa
type MessageSender string

const (
	SenderUser     MessageSender = "user"
	SenderCustomer MessageSender = "customer"
)

// MessageStatus é o estado de entrega reportado para uma mensagem enviada
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// Contact é um contato do CRM do WhatsApp. A chave de unicidade é o telefone.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	LastMessage string `json:"last_message"`
	UnreadCount int    `json:"unread_count"`
	Avatar      string `json:"avatar"`
}

// ChatMessage é uma mensagem do histórico de conversas, ordenada por inserção
type ChatMessage struct {
	ID        string        `json:"id"`
	Sender    MessageSender `json:"sender"`
	Text      string        `json:"text"`
	Timestamp string        `json:"timestamp"`
	Status    MessageStatus `json:"status,omitempty"`
}

// MessageReceipt é o comprovante devolvido pela API do WhatsApp após o envio
type MessageReceipt struct {
	MessageID string `json:"message_id"`
	To        string `json:"to"`
}
