package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
)

type firestoreVisitRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreVisitRequestRepository(client *firestore.Client) repository.VisitRequestRepository {
	return &firestoreVisitRequestRepository{client: client}
}

// pendingLockID names the lock document held while a (property, visitor)
// pair has a pending request.
func pendingLockID(propertyID, visitorID string) string {
	return fmt.Sprintf("%s_%s", propertyID, visitorID)
}

func (r *firestoreVisitRequestRepository) lockRef(request *entity.VisitRequest) *firestore.DocumentRef {
	return r.client.Collection(visitLocksCollection).Doc(pendingLockID(request.PropertyID, request.VisitorID))
}

func (r *firestoreVisitRequestRepository) Create(ctx context.Context, request *entity.VisitRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	now := time.Now()
	request.Status = entity.VisitPending
	request.CreatedAt = now
	request.UpdatedAt = now

	lockRef := r.lockRef(request)
	requestRef := r.client.Collection(visitRequestsCollection).Doc(request.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(lockRef); err == nil {
			return errors.DuplicateRequest("A pending visit request already exists for this property")
		} else if !IsNotFound(err) {
			return err
		}

		if err := tx.Create(lockRef, map[string]interface{}{
			"requestId": request.ID,
			"createdAt": now,
		}); err != nil {
			return err
		}
		return tx.Create(requestRef, request)
	})

	return r.translate(err, "Failed to create visit request")
}

func (r *firestoreVisitRequestRepository) GetByID(ctx context.Context, id string) (*entity.VisitRequest, error) {
	doc, err := r.client.Collection(visitRequestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Visit request", err)
		}
		return nil, errors.Internal("Failed to get visit request", err)
	}

	var request entity.VisitRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse visit request data", err)
	}

	return &request, nil
}

func (r *firestoreVisitRequestRepository) Transition(ctx context.Context, request *entity.VisitRequest, from entity.VisitStatus) error {
	requestRef := r.client.Collection(visitRequestsCollection).Doc(request.ID)
	lockRef := r.lockRef(request)
	request.UpdatedAt = time.Now()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		stored, err := r.getInTx(tx, requestRef)
		if err != nil {
			return err
		}
		if stored.Status != from {
			return errors.InvalidTransition(string(stored.Status), string(request.Status))
		}

		if err := tx.Set(requestRef, request); err != nil {
			return err
		}
		if from == entity.VisitPending {
			return tx.Delete(lockRef)
		}
		return nil
	})

	return r.translate(err, "Failed to update visit request")
}

func (r *firestoreVisitRequestRepository) Delete(ctx context.Context, request *entity.VisitRequest) error {
	requestRef := r.client.Collection(visitRequestsCollection).Doc(request.ID)
	lockRef := r.lockRef(request)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		stored, err := r.getInTx(tx, requestRef)
		if err != nil {
			return err
		}
		if stored.Status != entity.VisitPending {
			return errors.InvalidTransition(string(stored.Status), string(entity.VisitCancelled))
		}

		if err := tx.Delete(requestRef); err != nil {
			return err
		}
		return tx.Delete(lockRef)
	})

	return r.translate(err, "Failed to cancel visit request")
}

func (r *firestoreVisitRequestRepository) ListByVisitor(ctx context.Context, visitorID string) ([]*entity.VisitRequest, error) {
	return r.list(ctx, "visitorId", visitorID)
}

func (r *firestoreVisitRequestRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.VisitRequest, error) {
	return r.list(ctx, "ownerId", ownerID)
}

func (r *firestoreVisitRequestRepository) list(ctx context.Context, field, userID string) ([]*entity.VisitRequest, error) {
	iter := r.client.Collection(visitRequestsCollection).
		Where(field, "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var requests []*entity.VisitRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list visit requests", err)
		}

		var request entity.VisitRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, errors.Internal("Failed to parse visit request data", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *firestoreVisitRequestRepository) getInTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*entity.VisitRequest, error) {
	doc, err := tx.Get(ref)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Visit request", err)
		}
		return nil, err
	}

	var stored entity.VisitRequest
	if err := doc.DataTo(&stored); err != nil {
		return nil, errors.Internal("Failed to parse visit request data", err)
	}
	return &stored, nil
}

// translate keeps application errors raised inside a transaction and maps
// a lost create race on the lock document to DuplicateRequest.
func (r *firestoreVisitRequestRepository) translate(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if IsAlreadyExists(err) {
		return errors.DuplicateRequest("A pending visit request already exists for this property")
	}
	return errors.Persistence(message, err)
}
