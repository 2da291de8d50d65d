package usecase

import (
	"context"
	"io"
	"strings"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/internal/domain/service"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
	"kitnetia/pkg/utils"
)

const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type PropertyUseCase struct {
	propertyRepo repository.PropertyRepository
	cache        service.PropertyCache
	storage      service.FileUploadService
}

func NewPropertyUseCase(
	propertyRepo repository.PropertyRepository,
	cache service.PropertyCache,
	storage service.FileUploadService,
) *PropertyUseCase {
	return &PropertyUseCase{
		propertyRepo: propertyRepo,
		cache:        cache,
		storage:      storage,
	}
}

type PropertyInput struct {
	Title             string
	Address           string
	Neighborhood      string
	PropertyType      string
	Rent              float64
	Bedrooms          int
	Bathrooms         int
	AreaSqm           float64
	Description       string
	Amenities         []string
	Rules             []string
	Nearby            []string
	Images            []string
	ContactPreference string
}

func (in PropertyInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return errors.Validation("title is required")
	case strings.TrimSpace(in.Address) == "":
		return errors.Validation("address is required")
	case strings.TrimSpace(in.PropertyType) == "":
		return errors.Validation("property_type is required")
	case in.Rent <= 0:
		return errors.Validation("rent must be greater than zero")
	case in.Bedrooms < 0 || in.Bathrooms < 0 || in.AreaSqm < 0:
		return errors.Validation("bedrooms, bathrooms and area_sqm cannot be negative")
	}
	return nil
}

func (in PropertyInput) apply(p *entity.Property) {
	p.Title = strings.TrimSpace(in.Title)
	p.Address = strings.TrimSpace(in.Address)
	p.Neighborhood = strings.TrimSpace(in.Neighborhood)
	p.PropertyType = strings.TrimSpace(in.PropertyType)
	p.Rent = in.Rent
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.AreaSqm = in.AreaSqm
	p.Description = in.Description
	p.Amenities = nonNil(in.Amenities)
	p.Rules = nonNil(in.Rules)
	p.Nearby = nonNil(in.Nearby)
	p.Images = nonNil(in.Images)
	p.ContactPreference = in.ContactPreference
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func (uc *PropertyUseCase) CreateProperty(ctx context.Context, ownerID string, input PropertyInput) (*entity.Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	property := &entity.Property{
		OwnerID:  ownerID,
		IsActive: true,
	}
	input.apply(property)

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, property.ID)
	return property, nil
}

// GetOwnedProperty returns a listing, active or not, to its owner.
func (uc *PropertyUseCase) GetOwnedProperty(ctx context.Context, ownerID, id string) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, errors.Forbidden("You can only manage your own properties", nil)
	}
	return property, nil
}

func (uc *PropertyUseCase) UpdateProperty(ctx context.Context, ownerID, id string, input PropertyInput) (*entity.Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	property, err := uc.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	input.apply(property)
	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)
	return property, nil
}

func (uc *PropertyUseCase) SetPropertyActive(ctx context.Context, ownerID, id string, active bool) (*entity.Property, error) {
	property, err := uc.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if property.IsActive != active {
		property.IsActive = active
		if err := uc.propertyRepo.Update(ctx, property); err != nil {
			return nil, err
		}
	}

	uc.invalidate(ctx, id)
	return property, nil
}

func (uc *PropertyUseCase) ToggleProperty(ctx context.Context, ownerID, id string) (*entity.Property, error) {
	property, err := uc.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return uc.SetPropertyActive(ctx, ownerID, id, !property.IsActive)
}

func (uc *PropertyUseCase) DeleteProperty(ctx context.Context, ownerID, id string) error {
	property, err := uc.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := uc.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)

	if uc.storage != nil {
		for _, url := range property.Images {
			if err := uc.storage.DeleteFile(ctx, url); err != nil {
				logger.Warn("Failed to delete image %s of property %s: %v", url, id, err)
			}
		}
	}
	return nil
}

// GetPublicProperty returns an active listing. Inactive and missing listings are both NotFound.
func (uc *PropertyUseCase) GetPublicProperty(ctx context.Context, id string) (*entity.Property, error) {
	cached, err := uc.cache.GetProperty(ctx, id)
	if err != nil {
		logger.Warn("Property cache read failed for %s: %v", id, err)
	} else if cached != nil && cached.IsActive {
		return cached, nil
	}

	generation, genErr := uc.cache.PropertyGeneration(ctx, id)

	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, errors.NotFound("Property", nil)
	}

	if genErr != nil {
		logger.Warn("Property cache generation read failed for %s: %v", id, genErr)
	} else if err := uc.cache.SetProperty(ctx, property, generation); err != nil {
		logger.Warn("Property cache write failed for %s: %v", id, err)
	}
	return property, nil
}

func (uc *PropertyUseCase) ListPublicProperties(ctx context.Context, filter entity.PropertyFilter, page, limit int) ([]*entity.Property, int64, error) {
	properties, err := uc.cache.GetList(ctx, filter)
	if err != nil {
		logger.Warn("Property list cache read failed: %v", err)
	}

	if properties == nil {
		generation, genErr := uc.cache.ListGeneration(ctx)

		properties, err = uc.propertyRepo.ListActive(ctx, filter)
		if err != nil {
			return nil, 0, err
		}

		if genErr != nil {
			logger.Warn("Property list cache generation read failed: %v", genErr)
		} else if err := uc.cache.SetList(ctx, filter, properties, generation); err != nil {
			logger.Warn("Property list cache write failed: %v", err)
		}
	}

	start, end := utils.NewPaginationParams(page, limit).Window(len(properties))
	return properties[start:end], int64(len(properties)), nil
}

func (uc *PropertyUseCase) ListOwnerProperties(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	return uc.propertyRepo.ListByOwner(ctx, ownerID)
}

type UploadImageInput struct {
	File        io.Reader
	ContentType string
	Size        int64
}

func (uc *PropertyUseCase) UploadPropertyImage(ctx context.Context, ownerID, id string, input UploadImageInput) (*entity.Property, error) {
	if uc.storage == nil {
		return nil, errors.Internal("Image storage is not configured", nil)
	}
	if input.Size > MaxImageSize {
		return nil, errors.Validation("image must be at most 5MB")
	}
	if !allowedImageTypes[input.ContentType] {
		return nil, errors.Validation("image must be jpeg, png, webp or gif")
	}

	property, err := uc.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.storage.UploadFile(ctx, input.File, input.ContentType, "properties/"+id, true)
	if err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}

	property.Images = append(property.Images, url)
	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		if delErr := uc.storage.DeleteFile(ctx, url); delErr != nil {
			logger.Warn("Failed to roll back image %s: %v", url, delErr)
		}
		return nil, err
	}

	uc.invalidate(ctx, id)
	return property, nil
}

func (uc *PropertyUseCase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		logger.Warn("Property cache invalidation failed for %s: %v", id, err)
	}
}
