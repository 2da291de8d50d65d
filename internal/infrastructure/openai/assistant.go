package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oai "github.com/sashabaranov/go-openai"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/infrastructure/metrics"
	"kitnetia/pkg/config"
	apperrors "kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

type assistantAPI interface {
	CreateThread(ctx context.Context, request oai.ThreadRequest) (oai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, request oai.MessageRequest) (oai.Message, error)
	CreateRun(ctx context.Context, threadID string, request oai.RunRequest) (oai.Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (oai.Run, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (oai.MessagesList, error)
}

// AssistantCompletion is the thread + run variant. A run is polled every
// pollInterval, at most pollAttempts times, before giving up.
type AssistantCompletion struct {
	client       assistantAPI
	assistantID  string
	pollInterval time.Duration
	pollAttempts int
}

func NewAssistantCompletion(client assistantAPI, cfg config.CompletionConfig) *AssistantCompletion {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	attempts := cfg.PollAttempts
	if attempts <= 0 {
		attempts = 30
	}
	return &AssistantCompletion{
		client:       client,
		assistantID:  cfg.AssistantID,
		pollInterval: interval,
		pollAttempts: attempts,
	}
}

func (a *AssistantCompletion) Complete(ctx context.Context, messages []entity.Turn) (string, error) {
	started := time.Now()

	text, err := a.complete(ctx, messages)
	switch {
	case err == nil:
		metrics.ObserveCompletion(ModeAssistant, metrics.OutcomeOK, started)
	case apperrors.Is(err, apperrors.CodeCompletionTimeout):
		metrics.ObserveCompletion(ModeAssistant, metrics.OutcomeTimeout, started)
	default:
		metrics.ObserveCompletion(ModeAssistant, metrics.OutcomeUnavailable, started)
	}
	if err != nil {
		logger.Error("Assistant completion failed: assistant=%s, error=%v", a.assistantID, err)
	}
	return text, err
}

func (a *AssistantCompletion) complete(ctx context.Context, messages []entity.Turn) (string, error) {
	instructions, history, utterance := splitMessages(messages)
	if utterance == "" {
		return "", apperrors.CompletionUnavailable(errors.New("no user message to submit"))
	}

	thread, err := a.client.CreateThread(ctx, oai.ThreadRequest{Messages: history})
	if err != nil {
		return "", apperrors.CompletionUnavailable(fmt.Errorf("create thread: %w", err))
	}

	_, err = a.client.CreateMessage(ctx, thread.ID, oai.MessageRequest{
		Role:    oai.ChatMessageRoleUser,
		Content: utterance,
	})
	if err != nil {
		return "", apperrors.CompletionUnavailable(fmt.Errorf("post message: %w", err))
	}

	run, err := a.client.CreateRun(ctx, thread.ID, oai.RunRequest{
		AssistantID:  a.assistantID,
		Instructions: instructions,
	})
	if err != nil {
		return "", apperrors.CompletionUnavailable(fmt.Errorf("create run: %w", err))
	}

	if err := a.waitForRun(ctx, thread.ID, run); err != nil {
		return "", err
	}

	return a.latestAssistantMessage(ctx, thread.ID, run.ID)
}

func (a *AssistantCompletion) waitForRun(ctx context.Context, threadID string, run oai.Run) error {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= a.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return apperrors.CompletionTimeout(ctx.Err())
		case <-ticker.C:
		}

		current, err := a.client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return apperrors.CompletionUnavailable(fmt.Errorf("retrieve run: %w", err))
		}

		switch current.Status {
		case oai.RunStatusCompleted:
			return nil
		case oai.RunStatusFailed, oai.RunStatusCancelled, oai.RunStatusCancelling, oai.RunStatusExpired, oai.RunStatusRequiresAction:
			return apperrors.CompletionUnavailable(fmt.Errorf("run %s ended with status %s", run.ID, current.Status))
		}
	}

	return apperrors.CompletionTimeout(fmt.Errorf("run %s still pending after %d attempts", run.ID, a.pollAttempts))
}

func (a *AssistantCompletion) latestAssistantMessage(ctx context.Context, threadID, runID string) (string, error) {
	limit := 20
	order := "desc"
	list, err := a.client.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return "", apperrors.CompletionUnavailable(fmt.Errorf("list messages: %w", err))
	}

	for _, msg := range list.Messages {
		if msg.Role != oai.ChatMessageRoleAssistant {
			continue
		}
		var b strings.Builder
		for _, content := range msg.Content {
			if content.Text != nil {
				b.WriteString(content.Text.Value)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}

	return "", apperrors.CompletionUnavailable(fmt.Errorf("run %s produced no assistant message", runID))
}

// splitMessages separates the system instructions, the prior turns used to
// seed the thread, and the final user utterance.
func splitMessages(messages []entity.Turn) (string, []oai.ThreadMessage, string) {
	var instructions []string
	var turns []entity.Turn
	for _, m := range messages {
		if m.Role == entity.RoleSystem {
			instructions = append(instructions, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != entity.RoleUser {
		return strings.Join(instructions, "\n\n"), nil, ""
	}

	utterance := turns[len(turns)-1].Content
	history := make([]oai.ThreadMessage, 0, len(turns)-1)
	for _, t := range turns[:len(turns)-1] {
		role := oai.ThreadMessageRoleUser
		if t.Role == entity.RoleAssistant {
			role = oai.ThreadMessageRoleAssistant
		}
		history = append(history, oai.ThreadMessage{Role: role, Content: t.Content})
	}

	return strings.Join(instructions, "\n\n"), history, utterance
}
