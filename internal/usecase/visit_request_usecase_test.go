package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitnetia/internal/domain/entity"
	"kitnetia/pkg/errors"
)

func newVisitFixture(t *testing.T) (*VisitRequestUseCase, *memVisitRepo, *memPublisher, *entity.Property) {
	t.Helper()
	properties := newMemPropertyRepo(&entity.Property{ID: "prop-1", OwnerID: "owner-1", Title: "Kitnet", Rent: 1200, IsActive: true})
	propertyUC := NewPropertyUseCase(properties, newMemCache(), nil)
	visits := newMemVisitRepo()
	publisher := &memPublisher{}
	property, err := properties.GetByID(context.Background(), "prop-1")
	require.NoError(t, err)
	return NewVisitRequestUseCase(visits, propertyUC, publisher), visits, publisher, property
}

func visitInput() CreateVisitRequestInput {
	return CreateVisitRequestInput{
		PropertyID:     "prop-1",
		PreferredDate:  "2026-11-02T14:00:00Z",
		VisitorMessage: "Posso visitar à tarde?",
	}
}

func TestCreateVisitRequest(t *testing.T) {
	uc, _, publisher, _ := newVisitFixture(t)
	ctx := context.Background()

	input := visitInput()
	input.AlternativeDate = "2026-11-03T10:00:00-03:00"
	req, err := uc.CreateVisitRequest(ctx, "visitor-1", input)
	require.NoError(t, err)
	assert.Equal(t, entity.VisitPending, req.Status)
	assert.Equal(t, "owner-1", req.OwnerID)
	require.NotNil(t, req.AlternativeDate)
	require.NotNil(t, req.VisitorMessage)
	assert.Nil(t, req.OwnerResponse)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "owner-1", publisher.events[0].UserID)
}

func TestCreateVisitRequest_Validation(t *testing.T) {
	uc, _, _, _ := newVisitFixture(t)
	ctx := context.Background()

	for _, input := range []CreateVisitRequestInput{
		{PreferredDate: "2026-11-02T14:00:00Z"},
		{PropertyID: "prop-1"},
		{PropertyID: "prop-1", PreferredDate: "amanhã"},
		{PropertyID: "prop-1", PreferredDate: "2026-11-02T14:00:00Z", AlternativeDate: "02/11/2026"},
	} {
		_, err := uc.CreateVisitRequest(ctx, "visitor-1", input)
		assert.True(t, errors.Is(err, errors.CodeValidation), "%+v", input)
	}

	input := visitInput()
	input.PropertyID = "missing"
	_, err := uc.CreateVisitRequest(ctx, "visitor-1", input)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = uc.CreateVisitRequest(ctx, "owner-1", visitInput())
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestCreateVisitRequest_DuplicatePendingRejected(t *testing.T) {
	uc, visits, _, _ := newVisitFixture(t)
	ctx := context.Background()

	first, err := uc.CreateVisitRequest(ctx, "visitor-1", visitInput())
	require.NoError(t, err)
	before := *visits.items[first.ID]

	second := visitInput()
	second.PreferredDate = "2026-12-01T09:00:00Z"
	_, err = uc.CreateVisitRequest(ctx, "visitor-1", second)
	assert.True(t, errors.Is(err, errors.CodeDuplicateRequest))
	assert.Len(t, visits.items, 1)
	assert.Equal(t, before, *visits.items[first.ID])

	_, err = uc.CreateVisitRequest(ctx, "visitor-2", visitInput())
	assert.NoError(t, err, "other visitors are unaffected")

	// once resolved, a new request may be opened
	_, err = uc.Reject(ctx, "owner-1", first.ID, "")
	require.NoError(t, err)
	_, err = uc.CreateVisitRequest(ctx, "visitor-1", second)
	assert.NoError(t, err)
}

func TestVisitRequestLifecycle(t *testing.T) {
	uc, _, publisher, _ := newVisitFixture(t)
	ctx := context.Background()

	req, err := uc.CreateVisitRequest(ctx, "visitor-1", visitInput())
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, "visitor-1", req.ID, "")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = uc.Complete(ctx, "owner-1", req.ID, "")
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition), "pending cannot jump to completed")

	confirmed, err := uc.Confirm(ctx, "owner-1", req.ID, "Te espero às 14h")
	require.NoError(t, err)
	assert.Equal(t, entity.VisitConfirmed, confirmed.Status)
	assert.Equal(t, "Te espero às 14h", *confirmed.OwnerResponse)

	err = uc.Cancel(ctx, "visitor-1", req.ID)
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))

	completed, err := uc.Complete(ctx, "owner-1", req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.VisitCompleted, completed.Status)
	assert.Equal(t, "Te espero às 14h", *completed.OwnerResponse)

	assert.Equal(t, "visitor-1", publisher.events[len(publisher.events)-1].UserID)
}

func TestTerminalVisitRequestsCannotMove(t *testing.T) {
	ctx := context.Background()

	for _, terminal := range []entity.VisitStatus{entity.VisitRejected, entity.VisitCompleted} {
		uc, _, _, _ := newVisitFixture(t)
		req, err := uc.CreateVisitRequest(ctx, "visitor-1", visitInput())
		require.NoError(t, err)

		if terminal == entity.VisitRejected {
			_, err = uc.Reject(ctx, "owner-1", req.ID, "")
		} else {
			_, err = uc.Confirm(ctx, "owner-1", req.ID, "")
			require.NoError(t, err)
			_, err = uc.Complete(ctx, "owner-1", req.ID, "")
		}
		require.NoError(t, err)

		_, err = uc.Confirm(ctx, "owner-1", req.ID, "")
		assert.True(t, errors.Is(err, errors.CodeInvalidTransition), string(terminal))
		_, err = uc.Reject(ctx, "owner-1", req.ID, "")
		assert.True(t, errors.Is(err, errors.CodeInvalidTransition), string(terminal))
		_, err = uc.Complete(ctx, "owner-1", req.ID, "")
		assert.True(t, errors.Is(err, errors.CodeInvalidTransition), string(terminal))
		err = uc.Cancel(ctx, "visitor-1", req.ID)
		assert.True(t, errors.Is(err, errors.CodeInvalidTransition), string(terminal))
	}
}

func TestCancelVisitRequest(t *testing.T) {
	uc, visits, _, _ := newVisitFixture(t)
	ctx := context.Background()

	req, err := uc.CreateVisitRequest(ctx, "visitor-1", visitInput())
	require.NoError(t, err)

	err = uc.Cancel(ctx, "owner-1", req.ID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	require.NoError(t, uc.Cancel(ctx, "visitor-1", req.ID))
	assert.Empty(t, visits.items)

	mine, err := uc.ListMine(ctx, "visitor-1", false)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = uc.CreateVisitRequest(ctx, "visitor-1", visitInput())
	assert.NoError(t, err, "cancelling releases the pending slot")
}
