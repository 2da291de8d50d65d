package handler

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/chatbot"
	"kitnetia/internal/usecase"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/response"
)

type ChatbotHandler struct {
	chatbotUseCase *usecase.ChatbotUseCase
}

func NewChatbotHandler(chatbotUseCase *usecase.ChatbotUseCase) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotUseCase: chatbotUseCase,
	}
}

type chatbotMessageRequest struct {
	Message             string                 `json:"message" validate:"required"`
	PropertyID          string                 `json:"property_id" validate:"required"`
	ConversationHistory []chatbot.HistoryEntry `json:"conversation_history"`
}

// SendMessage answers 200 even when the completion failed; the reply then
// carries the fallback text and degraded=true.
func (h *ChatbotHandler) SendMessage(c echo.Context) error {
	var req chatbotMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reply, err := h.chatbotUseCase.SendMessage(c.Request().Context(), usecase.ChatbotMessageInput{
		PropertyID: req.PropertyID,
		Message:    req.Message,
		History:    req.ConversationHistory,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reply)
}

func (h *ChatbotHandler) Welcome(c echo.Context) error {
	text, err := h.chatbotUseCase.Welcome(c.Request().Context(), c.Param("propertyId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": text})
}
