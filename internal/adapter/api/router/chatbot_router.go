package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
	"kitnetia/internal/infrastructure/ratelimit"
)

func SetupChatbotRouter(e *echo.Echo, chatbotHandler *handler.ChatbotHandler, mw Middlewares) {
	chatbot := e.Group("/v1/chatbot")
	chatbot.Use(mw.Auth.OptionalAuth)

	chatbot.POST("/messages", chatbotHandler.SendMessage, mw.RateLimit.Limit(ratelimit.ActionChatbotMessage))
	chatbot.GET("/welcome/:propertyId", chatbotHandler.Welcome)
}
