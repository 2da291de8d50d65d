package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/middleware"
	"kitnetia/internal/domain/entity"
	"kitnetia/internal/usecase"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
	"kitnetia/pkg/response"
	"kitnetia/pkg/utils"
)

type PropertyHandler struct {
	propertyUseCase *usecase.PropertyUseCase
	viewUseCase     *usecase.PropertyViewUseCase
}

func NewPropertyHandler(propertyUseCase *usecase.PropertyUseCase, viewUseCase *usecase.PropertyViewUseCase) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
		viewUseCase:     viewUseCase,
	}
}

type propertyRequest struct {
	Title             string   `json:"title" validate:"required"`
	Address           string   `json:"address" validate:"required"`
	Neighborhood      string   `json:"neighborhood"`
	PropertyType      string   `json:"property_type" validate:"required"`
	Rent              float64  `json:"rent" validate:"gt=0"`
	Bedrooms          int      `json:"bedrooms" validate:"min=0"`
	Bathrooms         int      `json:"bathrooms" validate:"min=0"`
	AreaSqm           float64  `json:"area_sqm" validate:"min=0"`
	Description       string   `json:"description"`
	Amenities         []string `json:"amenities"`
	Rules             []string `json:"rules"`
	Nearby            []string `json:"nearby"`
	Images            []string `json:"images" validate:"omitempty,dive,url"`
	ContactPreference string   `json:"contact_preference"`
}

func (r propertyRequest) input() usecase.PropertyInput {
	return usecase.PropertyInput{
		Title:             r.Title,
		Address:           r.Address,
		Neighborhood:      r.Neighborhood,
		PropertyType:      r.PropertyType,
		Rent:              r.Rent,
		Bedrooms:          r.Bedrooms,
		Bathrooms:         r.Bathrooms,
		AreaSqm:           r.AreaSqm,
		Description:       r.Description,
		Amenities:         r.Amenities,
		Rules:             r.Rules,
		Nearby:            r.Nearby,
		Images:            r.Images,
		ContactPreference: r.ContactPreference,
	}
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	property, err := h.propertyUseCase.CreateProperty(c.Request().Context(), ownerID, req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, property)
}

func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	property, err := h.propertyUseCase.UpdateProperty(c.Request().Context(), ownerID, c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *PropertyHandler) SetPropertyStatus(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	property, err := h.propertyUseCase.SetPropertyActive(c.Request().Context(), ownerID, c.Param("id"), *req.IsActive)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) ToggleProperty(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	property, err := h.propertyUseCase.ToggleProperty(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) DeleteProperty(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	if err := h.propertyUseCase.DeleteProperty(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Property deleted successfully"})
}

// GetProperty is the public listing page. Views are tracked best-effort.
func (h *PropertyHandler) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()

	property, err := h.propertyUseCase.GetPublicProperty(ctx, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	if h.viewUseCase != nil && middleware.UserID(c) != property.OwnerID {
		h.viewUseCase.TrackView(ctx, usecase.TrackViewInput{
			PropertyID: property.ID,
			VisitorID:  middleware.UserID(c),
			IPAddress:  c.RealIP(),
			UserAgent:  c.Request().UserAgent(),
			Referrer:   c.Request().Referer(),
		})
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) ListProperties(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := entity.PropertyFilter{
		Neighborhood: strings.TrimSpace(c.QueryParam("neighborhood")),
		MinRent:      utils.QueryFloat(c, "min_rent"),
		MaxRent:      utils.QueryFloat(c, "max_rent"),
		Bedrooms:     utils.QueryInt(c, "bedrooms", 0),
		Search:       strings.TrimSpace(c.QueryParam("search")),
	}

	properties, total, err := h.propertyUseCase.ListPublicProperties(c.Request().Context(), filter, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, properties, total, pagination.Page, pagination.PageSize)
}

func (h *PropertyHandler) ListMyProperties(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	properties, err := h.propertyUseCase.ListOwnerProperties(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, properties)
}

func (h *PropertyHandler) GetMyProperty(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	property, err := h.propertyUseCase.GetOwnedProperty(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid image", err))
	}

	if file.Size > usecase.MaxImageSize {
		return response.Error(c, errors.Validation("image must be at most 5MB"))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read image", err))
	}
	defer src.Close()

	ownerID := c.Get("uid").(string)
	logger.Debug("Uploading image %s (%d bytes) for property %s", file.Filename, file.Size, c.Param("id"))

	property, err := h.propertyUseCase.UploadPropertyImage(c.Request().Context(), ownerID, c.Param("id"), usecase.UploadImageInput{
		File:        src,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) GetViewMetrics(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	metrics, err := h.viewUseCase.GetViewMetrics(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, metrics)
}
