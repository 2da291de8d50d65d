package entity

import "time"

type Favorite struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"user_id" firestore:"userId"`
	PropertyID string    `json:"property_id" firestore:"propertyId"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

type FavoriteWithProperty struct {
	Favorite
	Property *Property `json:"property"`
}
