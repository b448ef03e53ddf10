package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Search   SearchConfig
	Ai       AIConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AuditTopicName     string
	AnswerCacheTTLMin  int
}

type DatabaseConfig struct {
	Connection string
}

type SearchConfig struct {
	Endpoint  string
	APIKey    string
	IndexName string
}

type AIConfig struct {
	LLMProvider        string // "ollama" or "azure"
	LLMModel           string // e.g. "llama3.1:8b" or an Azure deployment name
	LLMBaseURL         string
	LLMAPIKey          string
	EmbeddingProvider  string // "ollama" or "azure"
	OllamaBaseURL      string
	OllamaEmbedModel   string
	AzureEmbedEndpoint string
	AzureEmbedAPIKey   string
	AzureEmbedModel    string
}

type AuthConfig struct {
	JwtSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			AuditTopicName:     getEnv("AUDIT_TOPIC_NAME", "QUERY_AUDIT"),
			AnswerCacheTTLMin:  getEnvAsInt("ANSWER_CACHE_TTL_MINUTES", 10),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Search: SearchConfig{
			Endpoint:  getEnv("SEARCH_ENDPOINT", ""),
			APIKey:    getEnv("SEARCH_API_KEY", ""),
			IndexName: getEnv("SEARCH_INDEX_NAME", "documents"),
		},
		Ai: AIConfig{
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "llama3.1:8b"),
			LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:11434"),
			LLMAPIKey:          getEnv("LLM_API_KEY", ""),
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			AzureEmbedEndpoint: getEnv("AZURE_OPENAI_ENDPOINT", ""),
			AzureEmbedAPIKey:   getEnv("AZURE_OPENAI_API_KEY", ""),
			AzureEmbedModel:    getEnv("AZURE_EMBEDDING_DEPLOYMENT", "text-embedding-3-small"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
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
