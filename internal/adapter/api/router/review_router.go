package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
)

func SetupReviewRouter(e *echo.Echo, reviewHandler *handler.ReviewHandler, mw Middlewares) {
	// Public routes
	e.GET("/v1/properties/:id/reviews", reviewHandler.ListPropertyReviews)

	// Protected routes
	e.POST("/v1/properties/:id/reviews", reviewHandler.CreateReview, mw.Auth.Authenticate)

	reviews := e.Group("/v1/reviews")
	reviews.Use(mw.Auth.Authenticate)
	reviews.PUT("/:reviewId", reviewHandler.UpdateReview)
	reviews.DELETE("/:reviewId", reviewHandler.DeleteReview)
}
