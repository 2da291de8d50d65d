package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kitnetia/internal/domain/entity"
)

func TestDeterministicIDs(t *testing.T) {
	assert.Equal(t, "p1_v1", pendingLockID("p1", "v1"))
	assert.Equal(t, "p1_v1_o1", conversationID("p1", "v1", "o1"))
	assert.Equal(t, "p1_r1", reviewID("p1", "r1"))
	assert.Equal(t, "u1_p1", favoriteID("u1", "p1"))
}

func TestMatchesFilter(t *testing.T) {
	p := &entity.Property{
		Title:        "Kitnet Studio Centro",
		Neighborhood: "Centro",
		Rent:         1200,
		Bedrooms:     1,
	}
	minRent, maxRent := 1000.0, 1100.0

	assert.True(t, matchesFilter(p, entity.PropertyFilter{}))
	assert.True(t, matchesFilter(p, entity.PropertyFilter{Neighborhood: "centro", Search: "studio"}))
	assert.True(t, matchesFilter(p, entity.PropertyFilter{MinRent: &minRent}))
	assert.False(t, matchesFilter(p, entity.PropertyFilter{MaxRent: &maxRent}))
	assert.False(t, matchesFilter(p, entity.PropertyFilter{Bedrooms: 2}))
	assert.False(t, matchesFilter(p, entity.PropertyFilter{Search: "praia"}))
}
