package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Assistant AssistantConfig
	Chat      ChatConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AssistantConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	Instructions    string
	VectorStoreName string
	StoreExpiryDays int
	PollInterval    time.Duration
	RunTimeout      time.Duration
}

type ChatConfig struct {
	UploadBaseDir      string
	ExportDir          string
	MeetingMinutesPath string
	IngestedTopic      string
	ExchangedTopic     string
}

// SessionConfig bounds the in-memory session store. The JWT signing secret is
// read from the environment where the middleware lives.
type SessionConfig struct {
	TTL           time.Duration
	PurgeInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Assistant: AssistantConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			BaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:           getEnv("MODEL_NAME", "gpt-4o-mini"),
			Instructions:    getEnv("ASSISTANT_INSTRUCTIONS", "You are a friendly, helpful assistant."),
			VectorStoreName: getEnv("VECTOR_STORE_NAME", "knowledge-base"),
			StoreExpiryDays: getEnvAsInt("VECTOR_STORE_EXPIRY_DAYS", 1),
			PollInterval:    time.Duration(getEnvAsInt("RUN_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
			RunTimeout:      time.Duration(getEnvAsInt("RUN_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Chat: ChatConfig{
			UploadBaseDir:      getEnv("UPLOAD_BASE_DIR", "dir"),
			ExportDir:          getEnv("EXPORT_DIR", "exports"),
			MeetingMinutesPath: getEnv("MEETING_MINUTES_PROMPT_PATH", "prompt_meeting_minutes.txt"),
			IngestedTopic:      getEnv("DOCUMENT_INGESTED_TOPIC", "DOCUMENT_INGESTED"),
			ExchangedTopic:     getEnv("CHAT_EXCHANGED_TOPIC", "CHAT_EXCHANGED"),
		},
		Session: SessionConfig{
			TTL:           time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
			PurgeInterval: time.Duration(getEnvAsInt("SESSION_PURGE_MINUTES", 10)) * time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
