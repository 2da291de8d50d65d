package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	oai "github.com/sashabaranov/go-openai"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/infrastructure/metrics"
	"kitnetia/pkg/config"
	apperrors "kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

type chatAPI interface {
	CreateChatCompletion(ctx context.Context, request oai.ChatCompletionRequest) (oai.ChatCompletionResponse, error)
}

// ChatCompletion is the synchronous variant: one request, one response.
type ChatCompletion struct {
	client      chatAPI
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

func NewChatCompletion(client chatAPI, cfg config.CompletionConfig) *ChatCompletion {
	return &ChatCompletion{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.RequestTimeout,
	}
}

func (c *ChatCompletion) Complete(ctx context.Context, messages []entity.Turn) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, oai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toChatMessages(messages),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		logger.Error("Chat completion failed: model=%s, error=%v", c.model, err)
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.ObserveCompletion(ModeChat, metrics.OutcomeTimeout, started)
			return "", apperrors.CompletionTimeout(err)
		}
		metrics.ObserveCompletion(ModeChat, metrics.OutcomeUnavailable, started)
		return "", apperrors.CompletionUnavailable(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ObserveCompletion(ModeChat, metrics.OutcomeUnavailable, started)
		return "", apperrors.CompletionUnavailable(errors.New("completion returned no choices"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		metrics.ObserveCompletion(ModeChat, metrics.OutcomeUnavailable, started)
		return "", apperrors.CompletionUnavailable(errors.New("completion returned empty content"))
	}

	metrics.ObserveCompletion(ModeChat, metrics.OutcomeOK, started)
	logger.Debug("Chat completion finished in %s", time.Since(started))
	return text, nil
}
