package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER, VECTOR_BACKEND and LLM_PROVIDER.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	BackendQdrant   = "qdrant"
	BackendPgvector = "pgvector"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DBDriver      string
	DatabaseURL   string
	VectorBackend string

	QdrantURL           string
	QdrantCollection    string
	EmbeddingDimensions int

	LLMProvider          string
	GeminiAPIKey         string
	GeminiChatModel      string
	GeminiSummaryModel   string
	GeminiEmbeddingModel string
	LLMBaseURL           string
	LLMModelName         string
	LLMAPIKey            string
	EmbeddingBaseURL     string
	EmbeddingModelName   string

	GitHubToken  string
	GitHubAPIURL string

	MaxRepoFiles         int
	MaxFileChars         int
	SummaryCharBudget    int
	FetchConcurrency     int
	LLMRequestsPerMinute int
	ExtraIgnorePatterns  []string
	LoadingTTL           time.Duration
	CreateRatePerMinute  int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:              getEnv("API_PORT", "9000"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		DBDriver:             getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		VectorBackend:        getEnv("VECTOR_BACKEND", BackendQdrant),
		QdrantURL:            getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:     getEnv("QDRANT_COLLECTION", "file_summaries"),
		LLMProvider:          getEnv("LLM_PROVIDER", ProviderGemini),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-1.5-flash"),
		GeminiSummaryModel:   getEnv("GEMINI_SUMMARY_MODEL", "gemini-1.5-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		LLMBaseURL:           getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:         getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:            getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:     getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName:   getEnv("EMBEDDING_MODEL_NAME", "nomic-embed-text-v1.5"),
		GitHubToken:          getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:         getEnv("GITHUB_API_URL", ""),
		ExtraIgnorePatterns:  splitList(getEnv("EXTRA_IGNORE_PATTERNS", "")),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"EMBEDDING_DIMENSIONS", 768, &cfg.EmbeddingDimensions},
		{"MAX_REPO_FILES", 60, &cfg.MaxRepoFiles},
		{"MAX_FILE_CHARS", 10000, &cfg.MaxFileChars},
		{"SUMMARY_CHAR_BUDGET", 30000, &cfg.SummaryCharBudget},
		{"FETCH_CONCURRENCY", 3, &cfg.FetchConcurrency},
		{"LLM_REQUESTS_PER_MINUTE", 60, &cfg.LLMRequestsPerMinute},
		{"CREATE_RATE_PER_MINUTE", 10, &cfg.CreateRatePerMinute},
	}
	for _, spec := range ints {
		v, err := getPositiveInt(spec.key, spec.def)
		if err != nil {
			return nil, err
		}
		*spec.dest = v
	}

	ttl, err := time.ParseDuration(getEnv("LOADING_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("LOADING_TTL must be a valid duration: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("LOADING_TTL must be greater than 0")
	}
	cfg.LoadingTTL = ttl

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.DBDriver == DriverSQLite {
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "./data/repoqa.db"
		}
		dataDir := filepath.Dir(cfg.DatabaseURL)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks cross-field constraints.
func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DBDriver == DriverPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when DB_DRIVER is %s", DriverPostgres)
	}

	switch c.VectorBackend {
	case BackendQdrant:
	case BackendPgvector:
		if c.DBDriver != DriverPostgres {
			return fmt.Errorf("VECTOR_BACKEND %s requires DB_DRIVER %s", BackendPgvector, DriverPostgres)
		}
	default:
		return fmt.Errorf("VECTOR_BACKEND must be %q or %q, got %q", BackendQdrant, BackendPgvector, c.VectorBackend)
	}

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is %s", ProviderGemini)
		}
	case ProviderOpenAI:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLMProvider)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
