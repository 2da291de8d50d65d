package entity

import "time"

type PropertyView struct {
	ID         string    `json:"id" firestore:"id"`
	PropertyID string    `json:"property_id" firestore:"propertyId"`
	VisitorID  string    `json:"visitor_id,omitempty" firestore:"visitorId"`
	IPAddress  string    `json:"ip_address,omitempty" firestore:"ipAddress"`
	UserAgent  string    `json:"user_agent,omitempty" firestore:"userAgent"`
	Referrer   string    `json:"referrer,omitempty" firestore:"referrer"`
	ViewedAt   time.Time `json:"viewed_at" firestore:"viewedAt"`
}

type ViewMetrics struct {
	TotalViews  int             `json:"total_views"`
	UniqueViews int             `json:"unique_views"`
	TodayViews  int             `json:"today_views"`
	RecentViews []*PropertyView `json:"recent_views"`
}
