package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
	"kitnetia/internal/infrastructure/ratelimit"
)

func SetupMessagingRouter(e *echo.Echo, messagingHandler *handler.MessagingHandler, mw Middlewares) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(mw.Auth.Authenticate)

	conversations.POST("", messagingHandler.StartConversation)
	conversations.GET("", messagingHandler.ListConversations)
	conversations.GET("/:id/messages", messagingHandler.ListMessages)
	conversations.POST("/:id/messages", messagingHandler.SendMessage, mw.RateLimit.Limit(ratelimit.ActionSendMessage))
	conversations.PATCH("/:id/read", messagingHandler.MarkRead)
}
