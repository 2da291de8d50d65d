package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"kitnetia/internal/adapter/api"
	"kitnetia/internal/adapter/api/handler"
	apimiddleware "kitnetia/internal/adapter/api/middleware"
	"kitnetia/internal/adapter/api/router"
	"kitnetia/internal/adapter/repository"
	"kitnetia/internal/chatbot"
	"kitnetia/internal/domain/service"
	"kitnetia/internal/infrastructure/cache"
	"kitnetia/internal/infrastructure/firebase"
	"kitnetia/internal/infrastructure/notify"
	"kitnetia/internal/infrastructure/openai"
	"kitnetia/internal/infrastructure/ratelimit"
	"kitnetia/internal/infrastructure/storage"
	"kitnetia/internal/infrastructure/supabase"
	"kitnetia/internal/infrastructure/websocket"
	"kitnetia/internal/usecase"
	"kitnetia/pkg/config"
	"kitnetia/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opt option.ClientOption
	if cfg.FirebaseServiceAccount != "" {
		logger.Info("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccount))
	} else {
		if _, err := os.Stat(cfg.FirebaseAccountPath); cfg.FirebaseAccountPath == "" || os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %q", cfg.FirebaseAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseAccountPath)
		opt = option.WithCredentialsFile(cfg.FirebaseAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	var verifier service.TokenVerifier
	switch cfg.AuthProvider {
	case "supabase":
		jwtVerifier, err := supabase.NewJWTVerifier(cfg.SupabaseJWTSecret)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase JWT verifier: %v", err)
		}
		verifier = jwtVerifier
	default:
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		verifier = firebase.NewFirebaseAuthClient(authClient)
	}

	var fileStorage service.FileUploadService
	if cfg.StorageBucket != "" {
		credentialsPath := cfg.FirebaseAccountPath
		if cfg.FirebaseServiceAccount != "" {
			credentialsPath = ""
		}
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		fileStorage = storageClient
	} else {
		logger.Warn("STORAGE_BUCKET not set, image uploads are disabled")
	}

	var propertyCache service.PropertyCache = cache.NoopPropertyCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer redisClient.Close()
		propertyCache = cache.NewRedisPropertyCache(redisClient, cfg.Redis.TTL)
	}

	var leadNotifier service.LeadNotifier = notify.NoopNotifier{}
	if cfg.Telegram.BotToken != "" {
		bot, err := notify.NewTelegramBot(cfg.Telegram.BotToken)
		if err != nil {
			logger.Error("Telegram notifications disabled: %v", err)
		} else {
			leadNotifier = notify.NewTelegramNotifier(bot, cfg.Telegram.LeadsChatID)
		}
	}

	completion, err := openai.NewCompletionClient(cfg.Completion)
	if err != nil {
		log.Fatalf("Failed to initialize completion client: %v", err)
	}

	profile := cfg.Chatbot.Profile
	composer, err := chatbot.NewPromptComposer(chatbot.PromptOptions{
		Persona:       profile.PersonaName,
		Template:      profile.PromptTemplate,
		IncludeReason: profile.IncludeReason,
	})
	if err != nil {
		log.Fatalf("Failed to build prompt composer: %v", err)
	}
	engine := chatbot.NewEngine(composer, completion, chatbot.NewMarkerExtractor(), chatbot.EngineOptions{
		MaxHistoryTurns: cfg.Chatbot.MaxHistoryTurns,
		FallbackMessage: profile.FallbackMessage,
	})

	propertyRepo := repository.NewFirestorePropertyRepository(firestoreClient)
	leadRepo := repository.NewFirestoreLeadRepository(firestoreClient)
	visitRepo := repository.NewFirestoreVisitRequestRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	viewRepo := repository.NewFirestorePropertyViewRepository(firestoreClient)

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultLimits(cfg.RateLimitChatbotPerMinute))
	limiter.StartCleanupRoutine(ctx.Done())

	wsManager := websocket.NewManager(nil)

	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, propertyCache, fileStorage)
	messagingUseCase := usecase.NewMessagingUseCase(conversationRepo, messageRepo, propertyRepo, wsManager)
	chatbotUseCase := usecase.NewChatbotUseCase(engine, propertyUseCase, leadRepo, leadNotifier, wsManager, profile.WelcomeTemplate)

	wsManager.SetActions(messagingUseCase)
	wsManager.Start(ctx)

	useCases := handler.UseCases{
		Property:     propertyUseCase,
		PropertyView: usecase.NewPropertyViewUseCase(viewRepo, propertyUseCase, limiter.For(ratelimit.ActionTrackView)),
		Chatbot:      chatbotUseCase,
		Dashboard:    usecase.NewDashboardUseCase(propertyRepo, leadRepo, viewRepo),
		VisitRequest: usecase.NewVisitRequestUseCase(visitRepo, propertyUseCase, wsManager),
		Messaging:    messagingUseCase,
		Review:       usecase.NewReviewUseCase(reviewRepo, propertyRepo, visitRepo),
		Favorite:     usecase.NewFavoriteUseCase(favoriteRepo, propertyRepo),
	}
	handlers := handler.Setup(useCases, wsManager, handler.NewHealthHandler(cfg.Completion.Mode, version))

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, handlers, router.Middlewares{
		Auth:      apimiddleware.NewAuthMiddleware(verifier),
		RateLimit: apimiddleware.NewRateLimitMiddleware(limiter),
	})

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown: %v", err)
	}

	// Let in-flight lead writes finish before Firestore closes.
	chatbotUseCase.Wait()
}
