package entity

import "time"

type Property struct {
	ID                string    `json:"id" firestore:"id"`
	OwnerID           string    `json:"user_id" firestore:"userId"`
	Title             string    `json:"title" firestore:"title"`
	Address           string    `json:"address" firestore:"address"`
	Neighborhood      string    `json:"neighborhood,omitempty" firestore:"neighborhood"`
	PropertyType      string    `json:"property_type" firestore:"propertyType"` // "kitnet", "studio", "apartamento", ...
	Rent              float64   `json:"rent" firestore:"rent"`
	Bedrooms          int       `json:"bedrooms" firestore:"bedrooms"`
	Bathrooms         int       `json:"bathrooms" firestore:"bathrooms"`
	AreaSqm           float64   `json:"area_sqm,omitempty" firestore:"areaSqm"`
	Description       string    `json:"description,omitempty" firestore:"description"`
	Amenities         []string  `json:"amenities" firestore:"amenities"`
	Rules             []string  `json:"rules" firestore:"rules"`
	Nearby            []string  `json:"nearby" firestore:"nearby"`
	Images            []string  `json:"images" firestore:"images"` // first entry is the cover
	ContactPreference string    `json:"contact_preference,omitempty" firestore:"contactPreference"`
	IsActive          bool      `json:"is_active" firestore:"isActive"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CoverImage returns the first image URL, or "" when the listing has none.
func (p *Property) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type PropertyFilter struct {
	Neighborhood string
	MinRent      *float64
	MaxRent      *float64
	Bedrooms     int
	Search       string
}
