package openai

import (
	"fmt"
	"strings"

	oai "github.com/sashabaranov/go-openai"

	"kitnetia/internal/chatbot"
	"kitnetia/internal/domain/entity"
	"kitnetia/pkg/config"
)

const (
	ModeChat      = "chat"
	ModeAssistant = "assistant"
)

// NewCompletionClient builds the variant selected by cfg.Mode. Callers only
// see the chatbot.CompletionClient contract.
func NewCompletionClient(cfg config.CompletionConfig) (chatbot.CompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	clientConfig := oai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	client := oai.NewClientWithConfig(clientConfig)

	switch strings.ToLower(cfg.Mode) {
	case "", ModeChat:
		return NewChatCompletion(client, cfg), nil
	case ModeAssistant:
		if cfg.AssistantID == "" {
			return nil, fmt.Errorf("OPENAI_ASSISTANT_ID is required in assistant mode")
		}
		return NewAssistantCompletion(client, cfg), nil
	default:
		return nil, fmt.Errorf("unknown completion mode %q", cfg.Mode)
	}
}

func toChatMessages(turns []entity.Turn) []oai.ChatCompletionMessage {
	messages := make([]oai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		role := oai.ChatMessageRoleUser
		switch t.Role {
		case entity.RoleSystem:
			role = oai.ChatMessageRoleSystem
		case entity.RoleAssistant:
			role = oai.ChatMessageRoleAssistant
		}
		messages = append(messages, oai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return messages
}
