package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
	Search   SearchConfig
	Tika     TikaConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	UploadURLExpiry time.Duration
}

type GeminiConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

type SearchConfig struct {
	APIKey   string
	EngineID string
	Timeout  time.Duration
}

type TikaConfig struct {
	ServerURL string
	Timeout   time.Duration
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			IngestTopic:        getEnv("DOCUMENT_INGEST_TOPIC_NAME", "DOCUMENT_PROCESSED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			BucketName:      getEnv("MINIO_BUCKET", "knowledge-base"),
			UseSSL:          getEnvAsBool("MINIO_USE_SSL", false),
			UploadURLExpiry: getEnvAsDuration("UPLOAD_URL_EXPIRY", 60*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			ChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-1.5-pro-latest"),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			Timeout:        getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Search: SearchConfig{
			APIKey:   getEnv("GOOGLE_SEARCH_API_KEY", ""),
			EngineID: getEnv("GOOGLE_SEARCH_ENGINE_ID", ""),
			Timeout:  getEnvAsDuration("GOOGLE_SEARCH_TIMEOUT", 15*time.Second),
		},
		Tika: TikaConfig{
			ServerURL: getEnv("TIKA_SERVER_URL", "http://localhost:9998"),
			Timeout:   getEnvAsDuration("TIKA_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "default_secret"),
			TokenExpiry: getEnvAsDuration("JWT_TOKEN_EXPIRY", 24*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
