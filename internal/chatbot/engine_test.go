package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitnetia/internal/domain/entity"
	apperrors "kitnetia/pkg/errors"
)

func newTestEngine(t *testing.T, client CompletionClient, maxTurns int) *Engine {
	t.Helper()
	composer, err := NewPromptComposer(PromptOptions{})
	require.NoError(t, err)
	return NewEngine(composer, client, NewMarkerExtractor(), EngineOptions{MaxHistoryTurns: maxTurns})
}

func TestEngineReply_Qualifies(t *testing.T) {
	var sent []entity.Turn
	client := CompletionFunc(func(ctx context.Context, messages []entity.Turn) (string, error) {
		sent = messages
		return "Obrigada, Ana! [LEAD_QUALIFICADO: Ana, 11999999999, ana@email.com, 5000, urgente, sim]", nil
	})

	history := []entity.Turn{
		{Role: entity.RoleUser, Content: "u1"},
		{Role: entity.RoleAssistant, Content: "a1"},
	}
	reply := newTestEngine(t, client, 0).Reply(context.Background(), sampleProperty(), history, "minha renda é 5000")

	assert.True(t, reply.Qualified)
	assert.False(t, reply.Degraded)
	assert.Equal(t, "Obrigada, Ana!", reply.Text)
	assert.Len(t, reply.Payload.Fields, 6)

	require.Len(t, sent, 4)
	assert.Equal(t, entity.RoleSystem, sent[0].Role)
	assert.Equal(t, "minha renda é 5000", sent[3].Content)

	require.Len(t, reply.Transcript, 4)
	assert.Equal(t, entity.Turn{Role: entity.RoleAssistant, Content: "Obrigada, Ana!"}, reply.Transcript[3])
}

func TestEngineReply_FallbackNeverQualifies(t *testing.T) {
	failures := []error{
		apperrors.CompletionUnavailable(errors.New("503")),
		apperrors.CompletionTimeout(nil),
		context.DeadlineExceeded,
	}

	// transcript content that would normally qualify must not matter
	history := []entity.Turn{{Role: entity.RoleAssistant, Content: "[LEAD_QUALIFICADO: Ana, 1, a@b.c, 5000, urgente]"}}

	for _, failure := range failures {
		client := CompletionFunc(func(ctx context.Context, messages []entity.Turn) (string, error) {
			return "[LEAD_QUALIFICADO: should, be, ignored]", failure
		})

		reply := newTestEngine(t, client, 0).Reply(context.Background(), sampleProperty(), history, "oi")

		assert.Equal(t, DefaultFallbackMessage, reply.Text)
		assert.False(t, reply.Qualified)
		assert.True(t, reply.Degraded)
		assert.Nil(t, reply.Payload)
		assert.ErrorIs(t, reply.Err, failure)
		assert.Equal(t, DefaultFallbackMessage, reply.Transcript[len(reply.Transcript)-1].Content)
	}
}

func TestEngineReply_CustomFallback(t *testing.T) {
	composer, err := NewPromptComposer(PromptOptions{})
	require.NoError(t, err)
	client := CompletionFunc(func(ctx context.Context, messages []entity.Turn) (string, error) {
		return "", errors.New("down")
	})

	engine := NewEngine(composer, client, NewMarkerExtractor(), EngineOptions{FallbackMessage: "Volto já!"})
	reply := engine.Reply(context.Background(), sampleProperty(), nil, "oi")
	assert.Equal(t, "Volto já!", reply.Text)
}

func TestEngineReply_TruncatesPayloadOnly(t *testing.T) {
	var sent []entity.Turn
	client := CompletionFunc(func(ctx context.Context, messages []entity.Turn) (string, error) {
		sent = messages
		return "ok", nil
	})

	history := make([]entity.Turn, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, entity.Turn{Role: entity.RoleUser, Content: "x"})
	}

	reply := newTestEngine(t, client, 3).Reply(context.Background(), sampleProperty(), history, "y")
	assert.Len(t, sent, 5)
	assert.Len(t, reply.Transcript, 12)
}
