package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitnetia/internal/domain/entity"
	apperrors "kitnetia/pkg/errors"
)

func TestFavorites(t *testing.T) {
	properties := newMemPropertyRepo(
		&entity.Property{ID: "prop-1", OwnerID: "owner-1", IsActive: true},
		&entity.Property{ID: "prop-2", OwnerID: "owner-1", IsActive: true},
	)
	uc := NewFavoriteUseCase(newMemFavoriteRepo(), properties)
	ctx := context.Background()

	first, err := uc.AddFavorite(ctx, "ana", "prop-1")
	require.NoError(t, err)
	again, err := uc.AddFavorite(ctx, "ana", "prop-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = uc.AddFavorite(ctx, "ana", "prop-2")
	require.NoError(t, err)
	_, err = uc.AddFavorite(ctx, "ana", "missing")
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	require.NoError(t, properties.Delete(ctx, "prop-2"))
	list, err := uc.ListFavorites(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "prop-1", list[0].Property.ID)

	require.NoError(t, uc.RemoveFavorite(ctx, "ana", "prop-1"))
	ok, err := uc.IsFavorite(ctx, "ana", "prop-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTrackViewNeverFails(t *testing.T) {
	properties := newMemPropertyRepo(&entity.Property{ID: "prop-1", OwnerID: "owner-1", IsActive: true})
	views := &memViewRepo{fail: errors.New("firestore down")}
	uc := NewPropertyViewUseCase(views, NewPropertyUseCase(properties, newMemCache(), nil), nil)

	assert.NotPanics(t, func() {
		uc.TrackView(context.Background(), TrackViewInput{PropertyID: "prop-1", IPAddress: "1.1.1.1"})
	})
	assert.Empty(t, views.views)
}

type countingThrottle struct {
	remaining int
	keys      []string
}

func (c *countingThrottle) Allow(key string) bool {
	c.keys = append(c.keys, key)
	if c.remaining == 0 {
		return false
	}
	c.remaining--
	return true
}

func TestTrackViewThrottledIsSkipped(t *testing.T) {
	properties := newMemPropertyRepo(&entity.Property{ID: "prop-1", OwnerID: "owner-1", IsActive: true})
	views := &memViewRepo{}
	throttle := &countingThrottle{remaining: 2}
	uc := NewPropertyViewUseCase(views, NewPropertyUseCase(properties, newMemCache(), nil), throttle)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		uc.TrackView(ctx, TrackViewInput{PropertyID: "prop-1", IPAddress: "1.1.1.1"})
	}
	uc.TrackView(ctx, TrackViewInput{PropertyID: "prop-1", VisitorID: "ana", IPAddress: "1.1.1.1"})

	assert.Len(t, views.views, 2)
	assert.Equal(t, []string{"1.1.1.1", "1.1.1.1", "1.1.1.1", "ana"}, throttle.keys)
}

func TestGetViewMetrics(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	properties := newMemPropertyRepo(&entity.Property{ID: "prop-1", OwnerID: "owner-1", IsActive: true})
	views := &memViewRepo{}
	uc := NewPropertyViewUseCase(views, NewPropertyUseCase(properties, newMemCache(), nil), nil)
	ctx := context.Background()

	track := func(visitor, ip string, at time.Time) {
		uc.now = func() time.Time { return at }
		uc.TrackView(ctx, TrackViewInput{PropertyID: "prop-1", VisitorID: visitor, IPAddress: ip})
	}
	track("ana", "1.1.1.1", now.Add(-48*time.Hour))
	track("ana", "2.2.2.2", now.Add(-time.Hour))
	track("", "3.3.3.3", now.Add(-2*time.Hour))
	track("", "3.3.3.3", now.Add(-30*time.Minute))
	for i := 0; i < 8; i++ {
		track("", "9.9.9.9", now.Add(-10*time.Minute))
	}
	uc.now = func() time.Time { return now }

	metrics, err := uc.GetViewMetrics(ctx, "owner-1", "prop-1")
	require.NoError(t, err)
	assert.Equal(t, 12, metrics.TotalViews)
	assert.Equal(t, 3, metrics.UniqueViews)
	assert.Equal(t, 11, metrics.TodayViews)
	assert.Len(t, metrics.RecentViews, recentViewsLimit)

	_, err = uc.GetViewMetrics(ctx, "intruder", "prop-1")
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}
