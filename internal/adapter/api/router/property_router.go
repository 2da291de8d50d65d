package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
)

func SetupPropertyRouter(e *echo.Echo, propertyHandler *handler.PropertyHandler, mw Middlewares) {
	// Public routes
	properties := e.Group("/v1/properties")
	properties.GET("", propertyHandler.ListProperties)
	properties.GET("/:id", propertyHandler.GetProperty, mw.Auth.OptionalAuth)

	// Owner routes
	owner := e.Group("/v1/properties")
	owner.Use(mw.Auth.Authenticate)
	owner.POST("", propertyHandler.CreateProperty)
	owner.PUT("/:id", propertyHandler.UpdateProperty)
	owner.PATCH("/:id/status", propertyHandler.SetPropertyStatus)
	owner.PATCH("/:id/toggle", propertyHandler.ToggleProperty)
	owner.DELETE("/:id", propertyHandler.DeleteProperty)
	owner.POST("/:id/images", propertyHandler.UploadImage)
	owner.GET("/:id/views", propertyHandler.GetViewMetrics)

	my := e.Group("/v1/my/properties")
	my.Use(mw.Auth.Authenticate)
	my.GET("", propertyHandler.ListMyProperties)
	my.GET("/:id", propertyHandler.GetMyProperty)
}
