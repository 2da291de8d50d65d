package entity

import "time"

type Review struct {
	ID           string    `json:"id" firestore:"id"`
	PropertyID   string    `json:"property_id" firestore:"propertyId"`
	ReviewerID   string    `json:"reviewer_id" firestore:"reviewerId"`
	Rating       int       `json:"rating" firestore:"rating"` // 1-5
	Title        string    `json:"title" firestore:"title"`
	Comment      string    `json:"comment,omitempty" firestore:"comment"`
	StayDuration string    `json:"stay_duration,omitempty" firestore:"stayDuration"`
	IsVerified   bool      `json:"is_verified" firestore:"isVerified"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

type ReviewSummary struct {
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
}
