package handler

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/usecase"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

type addFavoriteRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	favorite, err := h.favoriteUseCase.AddFavorite(c.Request().Context(), userID, req.PropertyID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.favoriteUseCase.RemoveFavorite(c.Request().Context(), userID, c.Param("propertyId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Removed from favorites"})
}

func (h *FavoriteHandler) CheckFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)

	ok, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), userID, c.Param("propertyId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"is_favorite": ok})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	favorites, err := h.favoriteUseCase.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, favorites)
}
