package chatbot

import (
	"context"

	"kitnetia/internal/domain/entity"
)

// CompletionClient submits a transcript and returns one assistant utterance.
// Implementations translate provider failures into CompletionUnavailable or
// CompletionTimeout application errors.
type CompletionClient interface {
	Complete(ctx context.Context, messages []entity.Turn) (string, error)
}

type CompletionFunc func(ctx context.Context, messages []entity.Turn) (string, error)

func (f CompletionFunc) Complete(ctx context.Context, messages []entity.Turn) (string, error) {
	return f(ctx, messages)
}
