package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"kitnetia/internal/chatbot"
	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/internal/domain/service"
	"kitnetia/internal/infrastructure/metrics"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

const (
	maxUtteranceLength = 2000
	leadWriteTimeout   = 10 * time.Second
)

type ChatbotUseCase struct {
	engine          *chatbot.Engine
	propertyUseCase *PropertyUseCase
	leadRepo        repository.LeadRepository
	notifier        service.LeadNotifier
	publisher       service.RealtimePublisher
	welcomeTemplate string
	pending         sync.WaitGroup
}

func NewChatbotUseCase(
	engine *chatbot.Engine,
	propertyUseCase *PropertyUseCase,
	leadRepo repository.LeadRepository,
	notifier service.LeadNotifier,
	publisher service.RealtimePublisher,
	welcomeTemplate string,
) *ChatbotUseCase {
	return &ChatbotUseCase{
		engine:          engine,
		propertyUseCase: propertyUseCase,
		leadRepo:        leadRepo,
		notifier:        notifier,
		publisher:       publisher,
		welcomeTemplate: welcomeTemplate,
	}
}

type ChatbotMessageInput struct {
	PropertyID string
	Message    string
	History    []chatbot.HistoryEntry
}

type ChatbotReply struct {
	Response      string `json:"response"`
	LeadQualified bool   `json:"lead_qualified"`
	Degraded      bool   `json:"degraded"`
	// Error carries the failure code only, never the provider message.
	Error string `json:"error,omitempty"`
}

// SendMessage runs one chatbot turn. Completion failures are not errors: the
// reply carries the fallback text with Degraded set.
func (uc *ChatbotUseCase) SendMessage(ctx context.Context, input ChatbotMessageInput) (*ChatbotReply, error) {
	utterance := strings.TrimSpace(input.Message)
	if utterance == "" {
		return nil, errors.Validation("message is required")
	}
	if input.PropertyID == "" {
		return nil, errors.Validation("property_id is required")
	}
	if len([]rune(utterance)) > maxUtteranceLength {
		return nil, errors.Validation("message must be at most 2000 characters")
	}

	property, err := uc.propertyUseCase.GetPublicProperty(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	reply := uc.engine.Reply(ctx, property, chatbot.NormalizeHistory(input.History), utterance)

	if reply.Degraded {
		code := errors.CodeCompletionUnavailable
		if errors.Is(reply.Err, errors.CodeCompletionTimeout) {
			code = errors.CodeCompletionTimeout
		}
		logger.Error("Chatbot completion failed for property %s: %v", property.ID, reply.Err)
		metrics.FallbackReply(code)

		return &ChatbotReply{
			Response: reply.Text,
			Degraded: true,
			Error:    code,
		}, nil
	}

	if reply.Qualified {
		metrics.LeadQualified()
		uc.recordLead(property, &entity.Lead{
			PropertyID:          property.ID,
			OwnerID:             property.OwnerID,
			VisitorInfo:         reply.Payload,
			ConversationHistory: reply.Transcript,
			LeadQualified:       true,
		})
	}

	return &ChatbotReply{
		Response:      reply.Text,
		LeadQualified: reply.Qualified,
	}, nil
}

// recordLead persists and announces a lead without blocking the reply.
// A failed write is logged and counted, never retried.
func (uc *ChatbotUseCase) recordLead(property *entity.Property, lead *entity.Lead) {
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), leadWriteTimeout)
		defer cancel()

		if err := uc.leadRepo.Create(ctx, lead); err != nil {
			metrics.LeadPersistenceFailed()
			logger.LogLeadPersistenceError(property.ID, err)
		} else if uc.publisher != nil {
			uc.publisher.Publish(property.OwnerID, service.EventQualifiedLead, lead)
		}

		if uc.notifier != nil {
			if err := uc.notifier.NotifyLead(ctx, property, lead); err != nil {
				logger.Warn("Lead notification failed for property %s: %v", property.ID, err)
			}
		}
	}()
}

// Wait blocks until background lead writes finish.
func (uc *ChatbotUseCase) Wait() {
	uc.pending.Wait()
}

func (uc *ChatbotUseCase) Welcome(ctx context.Context, propertyID string) (string, error) {
	property, err := uc.propertyUseCase.GetPublicProperty(ctx, propertyID)
	if err != nil {
		return "", err
	}
	return chatbot.WelcomeMessage(uc.welcomeTemplate, uc.engine.Composer().Persona(), property.Title), nil
}
