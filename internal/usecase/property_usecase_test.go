package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitnetia/internal/domain/entity"
	"kitnetia/pkg/errors"
)

func validPropertyInput() PropertyInput {
	return PropertyInput{
		Title:        "Kitnet mobiliada no Centro",
		Address:      "Rua das Flores, 100",
		Neighborhood: "Centro",
		PropertyType: "kitnet",
		Rent:         1200,
		Bedrooms:     1,
		Bathrooms:    1,
		Amenities:    []string{"Wi-Fi", "Mobiliada"},
	}
}

func newPropertyUseCase() (*PropertyUseCase, *memPropertyRepo, *memCache, *memStorage) {
	repo := newMemPropertyRepo()
	cache := newMemCache()
	storage := &memStorage{}
	return NewPropertyUseCase(repo, cache, storage), repo, cache, storage
}

func TestCreateProperty(t *testing.T) {
	uc, _, _, _ := newPropertyUseCase()
	ctx := context.Background()

	property, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
	require.NoError(t, err)
	assert.NotEmpty(t, property.ID)
	assert.Equal(t, "owner-1", property.OwnerID)
	assert.True(t, property.IsActive)
	assert.Equal(t, []string{}, property.Rules)

	invalid := []func(*PropertyInput){
		func(in *PropertyInput) { in.Title = " " },
		func(in *PropertyInput) { in.Address = "" },
		func(in *PropertyInput) { in.PropertyType = "" },
		func(in *PropertyInput) { in.Rent = 0 },
		func(in *PropertyInput) { in.Bedrooms = -1 },
	}
	for _, mutate := range invalid {
		input := validPropertyInput()
		mutate(&input)
		_, err := uc.CreateProperty(ctx, "owner-1", input)
		assert.True(t, errors.Is(err, errors.CodeValidation), "%v", err)
	}
}

func TestUpdateProperty_OwnerOnly(t *testing.T) {
	uc, _, cache, _ := newPropertyUseCase()
	ctx := context.Background()

	property, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
	require.NoError(t, err)

	input := validPropertyInput()
	input.Rent = 1350
	updated, err := uc.UpdateProperty(ctx, "owner-1", property.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 1350.0, updated.Rent)
	assert.Contains(t, cache.invalidated, property.ID)

	_, err = uc.UpdateProperty(ctx, "intruder", property.ID, input)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	err = uc.DeleteProperty(ctx, "intruder", property.ID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestDeactivatedPropertyIsNotPublic(t *testing.T) {
	uc, _, _, _ := newPropertyUseCase()
	ctx := context.Background()

	property, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
	require.NoError(t, err)

	public, err := uc.GetPublicProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, public.ID)

	toggled, err := uc.ToggleProperty(ctx, "owner-1", property.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = uc.GetPublicProperty(ctx, property.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound), "cached copy must not outlive deactivation")

	owned, err := uc.GetOwnedProperty(ctx, "owner-1", property.ID)
	require.NoError(t, err)
	assert.False(t, owned.IsActive)

	list, total, err := uc.ListPublicProperties(ctx, entity.PropertyFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

// interleavingPropertyRepo runs hook once, after the first GetByID read
// and before the caller gets the row back.
type interleavingPropertyRepo struct {
	*memPropertyRepo
	hook func()
}

func (r *interleavingPropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	p, err := r.memPropertyRepo.GetByID(ctx, id)
	if hook := r.hook; hook != nil {
		r.hook = nil
		hook()
	}
	return p, err
}

func TestGetPublicProperty_DeactivationDuringCacheFill(t *testing.T) {
	ctx := context.Background()
	repo := &interleavingPropertyRepo{memPropertyRepo: newMemPropertyRepo()}
	cache := newMemCache()
	uc := NewPropertyUseCase(repo, cache, &memStorage{})

	property, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
	require.NoError(t, err)

	repo.hook = func() {
		_, err := uc.SetPropertyActive(ctx, "owner-1", property.ID, false)
		require.NoError(t, err)
	}

	_, err = uc.GetPublicProperty(ctx, property.ID)
	require.NoError(t, err, "visitor read the row while it was still active")
	assert.Nil(t, cache.properties[property.ID])

	_, err = uc.GetPublicProperty(ctx, property.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound), "%v", err)
}

func TestListPublicProperties_HugePage(t *testing.T) {
	uc, _, _, _ := newPropertyUseCase()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
		require.NoError(t, err)
	}

	page, total, err := uc.ListPublicProperties(ctx, entity.PropertyFilter{}, 4611686018427387905, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.EqualValues(t, 3, total)
}

func TestListPublicProperties_PaginatesAndCaches(t *testing.T) {
	uc, repo, cache, _ := newPropertyUseCase()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
		require.NoError(t, err)
	}

	page, total, err := uc.ListPublicProperties(ctx, entity.PropertyFilter{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	assert.Len(t, cache.lists[""], 3)

	// served from cache
	require.NoError(t, repo.Delete(ctx, "prop-1"))
	_, total, err = uc.ListPublicProperties(ctx, entity.PropertyFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	page, _, err = uc.ListPublicProperties(ctx, entity.PropertyFilter{}, 5, 20)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestUploadPropertyImage(t *testing.T) {
	uc, _, _, storage := newPropertyUseCase()
	ctx := context.Background()

	property, err := uc.CreateProperty(ctx, "owner-1", validPropertyInput())
	require.NoError(t, err)

	upload := UploadImageInput{File: strings.NewReader("img"), ContentType: "image/webp", Size: 3}
	updated, err := uc.UploadPropertyImage(ctx, "owner-1", property.ID, upload)
	require.NoError(t, err)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, storage.uploaded[0], updated.CoverImage())

	_, err = uc.UploadPropertyImage(ctx, "owner-1", property.ID, UploadImageInput{File: strings.NewReader(""), ContentType: "image/png", Size: MaxImageSize + 1})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = uc.UploadPropertyImage(ctx, "owner-1", property.ID, UploadImageInput{File: strings.NewReader(""), ContentType: "application/pdf", Size: 10})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = uc.UploadPropertyImage(ctx, "intruder", property.ID, upload)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	require.NoError(t, uc.DeleteProperty(ctx, "owner-1", property.ID))
	assert.Equal(t, storage.uploaded, storage.deleted)
}
