package chatbot

import (
	"context"

	"kitnetia/internal/domain/entity"
)

type Reply struct {
	Text      string
	Qualified bool
	// Degraded is set when the completion failed and Text is the fallback.
	Degraded bool
	Payload  *entity.LeadPayload
	// Transcript is the full history plus the new user and assistant turns.
	Transcript []entity.Turn
	Err        error
}

type EngineOptions struct {
	MaxHistoryTurns int
	FallbackMessage string
}

// Engine runs one conversational turn: compose, complete, extract.
type Engine struct {
	composer   *PromptComposer
	completion CompletionClient
	extractor  QualificationExtractor
	maxTurns   int
	fallback   string
}

func NewEngine(composer *PromptComposer, completion CompletionClient, extractor QualificationExtractor, opts EngineOptions) *Engine {
	fallback := opts.FallbackMessage
	if fallback == "" {
		fallback = DefaultFallbackMessage
	}
	return &Engine{
		composer:   composer,
		completion: completion,
		extractor:  extractor,
		maxTurns:   opts.MaxHistoryTurns,
		fallback:   fallback,
	}
}

func (e *Engine) Composer() *PromptComposer {
	return e.composer
}

func (e *Engine) Reply(ctx context.Context, property *entity.Property, history []entity.Turn, utterance string) Reply {
	transcript := NewTranscript(history)
	messages := transcript.Messages(e.composer.Compose(property), utterance, e.maxTurns)
	transcript.Append(entity.RoleUser, utterance)

	raw, err := e.completion.Complete(ctx, messages)
	if err != nil {
		transcript.Append(entity.RoleAssistant, e.fallback)
		return Reply{
			Text:       e.fallback,
			Degraded:   true,
			Transcript: transcript.Turns(),
			Err:        err,
		}
	}

	extraction := e.extractor.Extract(raw)
	transcript.Append(entity.RoleAssistant, extraction.Text)

	return Reply{
		Text:       extraction.Text,
		Qualified:  extraction.Qualified,
		Payload:    extraction.Payload,
		Transcript: transcript.Turns(),
	}
}
