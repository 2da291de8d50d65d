package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
	"kitnetia/internal/infrastructure/ratelimit"
)

func SetupVisitRequestRouter(e *echo.Echo, visitHandler *handler.VisitRequestHandler, mw Middlewares) {
	visits := e.Group("/v1/visit-requests")
	visits.Use(mw.Auth.Authenticate)

	visits.POST("", visitHandler.CreateVisitRequest, mw.RateLimit.Limit(ratelimit.ActionVisitRequest))
	visits.GET("", visitHandler.ListVisitRequests)
	visits.PATCH("/:id/confirm", visitHandler.ConfirmVisitRequest)
	visits.PATCH("/:id/reject", visitHandler.RejectVisitRequest)
	visits.PATCH("/:id/complete", visitHandler.CompleteVisitRequest)
	visits.DELETE("/:id", visitHandler.CancelVisitRequest)
}
