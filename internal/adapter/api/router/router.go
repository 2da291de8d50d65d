package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
	"kitnetia/internal/adapter/api/middleware"
	"kitnetia/internal/infrastructure/metrics"
)

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func Setup(e *echo.Echo, h *handler.Handlers, mw Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupPropertyRouter(e, h.Property, mw)
	SetupChatbotRouter(e, h.Chatbot, mw)
	SetupDashboardRouter(e, h.Dashboard, mw)
	SetupVisitRequestRouter(e, h.VisitRequest, mw)
	SetupMessagingRouter(e, h.Messaging, mw)
	SetupReviewRouter(e, h.Review, mw)
	SetupFavoriteRouter(e, h.Favorite, mw)
	SetupWebSocketRouter(e, h.WebSocket, mw)
}

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
