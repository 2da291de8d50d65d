package handler

import (
	ws "kitnetia/internal/infrastructure/websocket"
	"kitnetia/internal/usecase"
)

type UseCases struct {
	Property     *usecase.PropertyUseCase
	PropertyView *usecase.PropertyViewUseCase
	Chatbot      *usecase.ChatbotUseCase
	Dashboard    *usecase.DashboardUseCase
	VisitRequest *usecase.VisitRequestUseCase
	Messaging    *usecase.MessagingUseCase
	Review       *usecase.ReviewUseCase
	Favorite     *usecase.FavoriteUseCase
}

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Property     *PropertyHandler
	Chatbot      *ChatbotHandler
	Dashboard    *DashboardHandler
	VisitRequest *VisitRequestHandler
	Messaging    *MessagingHandler
	Review       *ReviewHandler
	Favorite     *FavoriteHandler
	WebSocket    *WebSocketHandler
}

func Setup(uc UseCases, wsManager *ws.Manager, health *HealthHandler) *Handlers {
	return &Handlers{
		Health:       health,
		Property:     NewPropertyHandler(uc.Property, uc.PropertyView),
		Chatbot:      NewChatbotHandler(uc.Chatbot),
		Dashboard:    NewDashboardHandler(uc.Dashboard),
		VisitRequest: NewVisitRequestHandler(uc.VisitRequest),
		Messaging:    NewMessagingHandler(uc.Messaging),
		Review:       NewReviewHandler(uc.Review),
		Favorite:     NewFavoriteHandler(uc.Favorite),
		WebSocket:    NewWebSocketHandler(wsManager),
	}
}
