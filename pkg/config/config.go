package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject        string
	FirebaseServiceAccount string
	FirebaseAccountPath    string
	StorageBucket          string

	// AuthProvider selects the token verifier: "firebase" or "supabase".
	AuthProvider      string
	SupabaseJWTSecret string

	Completion CompletionConfig
	Chatbot    ChatbotConfig
	Redis      RedisConfig
	Telegram   TelegramConfig

	RateLimitChatbotPerMinute int
}

type CompletionConfig struct {
	// Mode is "chat" for a single chat completion or "assistant" for thread+run polling.
	Mode           string
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	Temperature    float32
	AssistantID    string
	PollInterval   time.Duration
	PollAttempts   int
	RequestTimeout time.Duration
}

type ChatbotConfig struct {
	MaxHistoryTurns int
	ProfilePath     string
	Profile         AssistantProfile
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type TelegramConfig struct {
	BotToken    string
	LeadsChatID int64
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		FirebaseProject:        getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccount: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseAccountPath:    getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:          getEnv("STORAGE_BUCKET", ""),

		AuthProvider:      getEnv("AUTH_PROVIDER", "firebase"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		Completion: CompletionConfig{
			Mode:           getEnv("COMPLETION_MODE", "chat"),
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:      getEnvAsInt("OPENAI_MAX_TOKENS", 500),
			Temperature:    float32(getEnvAsFloat("OPENAI_TEMPERATURE", 0.7)),
			AssistantID:    getEnv("OPENAI_ASSISTANT_ID", ""),
			PollInterval:   getEnvAsDuration("ASSISTANT_POLL_INTERVAL", time.Second),
			PollAttempts:   getEnvAsInt("ASSISTANT_POLL_ATTEMPTS", 30),
			RequestTimeout: getEnvAsDuration("OPENAI_REQUEST_TIMEOUT", 60*time.Second),
		},

		Chatbot: ChatbotConfig{
			MaxHistoryTurns: getEnvAsInt("CHATBOT_MAX_HISTORY_TURNS", 20),
			ProfilePath:     getEnv("ASSISTANT_PROFILE_PATH", ""),
		},

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("PROPERTY_CACHE_TTL", 5*time.Minute),
		},

		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			LeadsChatID: getEnvAsInt64("TELEGRAM_LEADS_CHAT_ID", 0),
		},

		RateLimitChatbotPerMinute: getEnvAsInt("RATE_LIMIT_CHATBOT_PER_MINUTE", 20),
	}

	profile, err := LoadAssistantProfile(cfg.Chatbot.ProfilePath)
	if err != nil {
		return nil, err
	}
	cfg.Chatbot.Profile = profile

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
