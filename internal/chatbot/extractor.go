package chatbot

import (
	"regexp"
	"strings"

	"kitnetia/internal/domain/entity"
)

const MarkerTag = "LEAD_QUALIFICADO"

// Marker matches "[LEAD_QUALIFICADO: a, b, c]". A marker cut off by the
// token cap (no closing bracket before end of text) still matches.
var markerPattern = regexp.MustCompile(`(?s)\[\s*` + MarkerTag + `\s*:?(.*?)(?:\]|$)`)

type Extraction struct {
	Text      string
	Qualified bool
	Payload   *entity.LeadPayload
}

// QualificationExtractor isolates the marker format from callers, so a
// structured-output mode can replace it without touching the pipeline.
type QualificationExtractor interface {
	Extract(text string) Extraction
}

type MarkerExtractor struct{}

func NewMarkerExtractor() *MarkerExtractor {
	return &MarkerExtractor{}
}

func (MarkerExtractor) Extract(text string) Extraction {
	match := markerPattern.FindStringSubmatch(text)
	if match == nil {
		return Extraction{Text: text}
	}

	raw := strings.TrimSpace(match[1])

	cleaned := text
	for markerPattern.MatchString(cleaned) {
		cleaned = markerPattern.ReplaceAllString(cleaned, "")
	}

	return Extraction{
		Text:      strings.TrimSpace(cleaned),
		Qualified: true,
		Payload: &entity.LeadPayload{
			Kind:    entity.LeadPayloadMarkerCSV,
			RawData: raw,
			Fields:  splitFields(raw),
		},
	}
}

func splitFields(raw string) []string {
	fields := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			fields = append(fields, s)
		}
	}
	return fields
}

// Positions of the marker fields, in the order the prompt requests them.
const (
	FieldName = iota
	FieldPhone
	FieldEmail
	FieldIncome
	FieldUrgency
	FieldVisitInterest
	FieldReason
)
