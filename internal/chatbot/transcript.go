package chatbot

import (
	"strings"

	"kitnetia/internal/domain/entity"
)

// HistoryEntry is one prior turn as sent by a client. Both the completion
// shape {role, content} and the widget shape {text, is_user} are accepted.
type HistoryEntry struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
	IsUser  *bool  `json:"is_user,omitempty"`
}

// Turn normalizes the entry. Entries with no text, or with a role other than
// user or assistant, are rejected so clients cannot inject system prompts.
func (h HistoryEntry) Turn() (entity.Turn, bool) {
	if h.Role != "" {
		role := entity.Role(strings.ToLower(strings.TrimSpace(h.Role)))
		if role != entity.RoleUser && role != entity.RoleAssistant {
			return entity.Turn{}, false
		}
		content := h.Content
		if content == "" {
			content = h.Text
		}
		if strings.TrimSpace(content) == "" {
			return entity.Turn{}, false
		}
		return entity.Turn{Role: role, Content: content}, true
	}

	content := h.Text
	if content == "" {
		content = h.Content
	}
	if strings.TrimSpace(content) == "" {
		return entity.Turn{}, false
	}

	role := entity.RoleAssistant
	if h.IsUser != nil && *h.IsUser {
		role = entity.RoleUser
	}
	return entity.Turn{Role: role, Content: content}, true
}

// NormalizeHistory converts client entries to turns, preserving order.
func NormalizeHistory(entries []HistoryEntry) []entity.Turn {
	turns := make([]entity.Turn, 0, len(entries))
	for _, e := range entries {
		if t, ok := e.Turn(); ok {
			turns = append(turns, t)
		}
	}
	return turns
}

// Transcript is the ordered, append-only turn sequence of one session.
type Transcript struct {
	turns []entity.Turn
}

func NewTranscript(history []entity.Turn) *Transcript {
	turns := make([]entity.Turn, len(history))
	copy(turns, history)
	return &Transcript{turns: turns}
}

func (t *Transcript) Append(role entity.Role, content string) {
	t.turns = append(t.turns, entity.Turn{Role: role, Content: content})
}

func (t *Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of the full, untruncated sequence.
func (t *Transcript) Turns() []entity.Turn {
	out := make([]entity.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Messages builds the completion payload: the system prompt, the newest
// maxTurns prior turns (all of them when maxTurns <= 0), then the utterance.
func (t *Transcript) Messages(systemPrompt string, utterance string, maxTurns int) []entity.Turn {
	history := t.turns
	if maxTurns > 0 && len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}

	messages := make([]entity.Turn, 0, len(history)+2)
	messages = append(messages, entity.Turn{Role: entity.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, entity.Turn{Role: entity.RoleUser, Content: utterance})
	return messages
}
