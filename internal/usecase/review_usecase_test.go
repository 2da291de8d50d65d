package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitnetia/internal/domain/entity"
	"kitnetia/pkg/errors"
)

func newReviewFixture() (*ReviewUseCase, *memVisitRepo) {
	properties := newMemPropertyRepo(&entity.Property{ID: "prop-1", OwnerID: "owner-1", IsActive: true})
	visits := newMemVisitRepo()
	return NewReviewUseCase(newMemReviewRepo(), properties, visits), visits
}

func TestCreateReview(t *testing.T) {
	uc, visits := newReviewFixture()
	ctx := context.Background()

	visits.items["v1"] = &entity.VisitRequest{ID: "v1", PropertyID: "prop-1", VisitorID: "ana", Status: entity.VisitCompleted}

	review, err := uc.CreateReview(ctx, "ana", "prop-1", ReviewInput{Rating: 5, Title: "Ótima kitnet"})
	require.NoError(t, err)
	assert.True(t, review.IsVerified)

	_, err = uc.CreateReview(ctx, "ana", "prop-1", ReviewInput{Rating: 4, Title: "De novo"})
	assert.True(t, errors.Is(err, errors.CodeDuplicateRequest))

	unverified, err := uc.CreateReview(ctx, "bruno", "prop-1", ReviewInput{Rating: 4, Title: "Boa"})
	require.NoError(t, err)
	assert.False(t, unverified.IsVerified)

	_, err = uc.CreateReview(ctx, "owner-1", "prop-1", ReviewInput{Rating: 5, Title: "Minha"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	for _, input := range []ReviewInput{{Rating: 0, Title: "x"}, {Rating: 6, Title: "x"}, {Rating: 3}} {
		_, err = uc.CreateReview(ctx, "carla", "prop-1", input)
		assert.True(t, errors.Is(err, errors.CodeValidation))
	}
}

func TestListPropertyReviews_AverageRoundedToOneDecimal(t *testing.T) {
	uc, _ := newReviewFixture()
	ctx := context.Background()

	empty, err := uc.ListPropertyReviews(ctx, "prop-1")
	require.NoError(t, err)
	assert.Zero(t, empty.AverageRating)
	assert.NotNil(t, empty.Reviews)

	for reviewer, rating := range map[string]int{"a": 5, "b": 4, "c": 4} {
		_, err := uc.CreateReview(ctx, reviewer, "prop-1", ReviewInput{Rating: rating, Title: "ok"})
		require.NoError(t, err)
	}

	summary, err := uc.ListPropertyReviews(ctx, "prop-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalReviews)
	assert.Equal(t, 4.3, summary.AverageRating)
}

func TestUpdateAndDeleteOwnReviewOnly(t *testing.T) {
	uc, _ := newReviewFixture()
	ctx := context.Background()

	review, err := uc.CreateReview(ctx, "ana", "prop-1", ReviewInput{Rating: 3, Title: "Ok"})
	require.NoError(t, err)

	_, err = uc.UpdateReview(ctx, "bruno", review.ID, ReviewInput{Rating: 1, Title: "Ruim"})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	updated, err := uc.UpdateReview(ctx, "ana", review.ID, ReviewInput{Rating: 4, Title: "Melhorou"})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	assert.True(t, errors.Is(uc.DeleteReview(ctx, "bruno", review.ID), errors.CodeForbidden))
	require.NoError(t, uc.DeleteReview(ctx, "ana", review.ID))

	_, err = uc.UpdateReview(ctx, "ana", review.ID, ReviewInput{Rating: 4, Title: "x"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
