package entity

import "time"

type RecentLead struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Income        string    `json:"income"`
	Urgency       string    `json:"urgency"`
	CreatedAt     time.Time `json:"created_at"`
}

type DashboardMetrics struct {
	TotalProperties int     `json:"total_properties"`
	TotalLeads      int     `json:"total_leads"`
	QualifiedLeads  int     `json:"qualified_leads"`
	ConversionRate  int     `json:"conversion_rate"`
	AverageDays     float64 `json:"average_days"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
}

type PropertyAnalytics struct {
	PropertyID     string  `json:"property_id"`
	Title          string  `json:"title"`
	Rent           float64 `json:"rent"`
	IsActive       bool    `json:"is_active"`
	Leads          int     `json:"leads"`
	QualifiedLeads int     `json:"qualified_leads"`
	Views          int     `json:"views"`
}
