package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts the realtime endpoint. Browsers cannot set headers
// on the upgrade request, so the token may also come as ?token=.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, mw Middlewares) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket, mw.Auth.WebSocketAuth)
}
