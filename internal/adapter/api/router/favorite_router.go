package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
)

func SetupFavoriteRouter(e *echo.Echo, favoriteHandler *handler.FavoriteHandler, mw Middlewares) {
	favorites := e.Group("/v1/favorites")
	favorites.Use(mw.Auth.Authenticate)

	favorites.POST("", favoriteHandler.AddFavorite)
	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.GET("/:propertyId", favoriteHandler.CheckFavorite)
	favorites.DELETE("/:propertyId", favoriteHandler.RemoveFavorite)
}
