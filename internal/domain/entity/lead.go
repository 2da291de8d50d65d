package entity

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a chatbot transcript.
type Turn struct {
	Role    Role   `json:"role" firestore:"role"`
	Content string `json:"content" firestore:"content"`
}

// LeadPayloadMarkerCSV tags payloads parsed from the comma separated
// qualification marker. Other kinds may be added for structured output.
const LeadPayloadMarkerCSV = "marker_csv"

// LeadPayload is the visitor information captured at qualification time.
// Fields is positional and may be shorter or longer than the requested order.
type LeadPayload struct {
	Kind    string   `json:"kind" firestore:"kind"`
	RawData string   `json:"raw_data" firestore:"rawData"`
	Fields  []string `json:"fields" firestore:"fields"`
}

// Field returns the i-th parsed value or "" when the model omitted it.
func (p *LeadPayload) Field(i int) string {
	if p == nil || i < 0 || i >= len(p.Fields) {
		return ""
	}
	return p.Fields[i]
}

// Lead is the qualification record. Records are append-only.
type Lead struct {
	ID                  string       `json:"id" firestore:"id"`
	PropertyID          string       `json:"property_id" firestore:"propertyId"`
	OwnerID             string       `json:"owner_id" firestore:"ownerId"`
	VisitorInfo         *LeadPayload `json:"visitor_info" firestore:"visitorInfo"`
	ConversationHistory []Turn       `json:"conversation_history" firestore:"conversationHistory"`
	LeadQualified       bool         `json:"lead_qualified" firestore:"leadQualified"`
	CreatedAt           time.Time    `json:"created_at" firestore:"createdAt"`
}
