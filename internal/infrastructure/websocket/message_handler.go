package websocket

import (
	"context"
	"encoding/json"
	"time"

	"kitnetia/pkg/logger"
)

const (
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
	MessageTypeTyping   = "typing"
	MessageTypeMarkRead = "mark_read"
	MessageTypeError    = "error"
)

const actionTimeout = 5 * time.Second

// ChatActions is what clients may trigger over the socket.
type ChatActions interface {
	// Counterpart returns the other participant of a conversation userID belongs to.
	Counterpart(ctx context.Context, conversationID, userID string) (string, error)
	MarkRead(ctx context.Context, conversationID, userID string) (int, error)
}

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type TypingData struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id,omitempty"`
	Typing         bool   `json:"typing"`
}

type MarkReadData struct {
	ConversationID string `json:"conversation_id"`
}

func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{
			Type:      MessageTypePong,
			Data:      map[string]string{"status": "alive"},
			Timestamp: time.Now().Format(time.RFC3339),
		})

	case MessageTypeTyping:
		m.handleTyping(client, msg.Data)

	case MessageTypeMarkRead:
		m.handleMarkRead(client, msg.Data)

	default:
		logger.Debug("WebSocket: unknown message type '%s' from %s", msg.Type, client.UserID)
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) handleTyping(client *Client, raw json.RawMessage) {
	var data TypingData
	if err := json.Unmarshal(raw, &data); err != nil || data.ConversationID == "" {
		m.sendErrorToClient(client, "Invalid typing data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	other, err := m.actions.Counterpart(ctx, data.ConversationID, client.UserID)
	if err != nil {
		m.sendErrorToClient(client, "Conversation not available")
		return
	}

	data.UserID = client.UserID
	m.Publish(other, MessageTypeTyping, data)
}

func (m *Manager) handleMarkRead(client *Client, raw json.RawMessage) {
	var data MarkReadData
	if err := json.Unmarshal(raw, &data); err != nil || data.ConversationID == "" {
		m.sendErrorToClient(client, "Invalid mark read data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if _, err := m.actions.MarkRead(ctx, data.ConversationID, client.UserID); err != nil {
		m.sendErrorToClient(client, "Failed to mark messages as read")
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, WSMessage{
		Type:      MessageTypeError,
		Data:      map[string]string{"error": errorMsg},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
