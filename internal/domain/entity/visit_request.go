package entity

import "time"

type VisitStatus string

const (
	VisitPending   VisitStatus = "pending"
	VisitConfirmed VisitStatus = "confirmed"
	VisitRejected  VisitStatus = "rejected"
	VisitCompleted VisitStatus = "completed"

	// VisitCancelled is never stored: cancelling deletes the request.
	VisitCancelled VisitStatus = "cancelled"
)

var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitPending:   {VisitConfirmed, VisitRejected, VisitCancelled},
	VisitConfirmed: {VisitCompleted},
}

func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	for _, allowed := range visitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s VisitStatus) IsTerminal() bool {
	return len(visitTransitions[s]) == 0
}

type VisitRequest struct {
	ID              string      `json:"id" firestore:"id"`
	PropertyID      string      `json:"property_id" firestore:"propertyId"`
	VisitorID       string      `json:"visitor_id" firestore:"visitorId"`
	OwnerID         string      `json:"owner_id" firestore:"ownerId"`
	PreferredDate   time.Time   `json:"preferred_date" firestore:"preferredDate"`
	AlternativeDate *time.Time  `json:"alternative_date" firestore:"alternativeDate"`
	VisitorMessage  *string     `json:"visitor_message" firestore:"visitorMessage"`
	Status          VisitStatus `json:"status" firestore:"status"`
	OwnerResponse   *string     `json:"owner_response" firestore:"ownerResponse"`
	CreatedAt       time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time   `json:"updated_at" firestore:"updatedAt"`
}
