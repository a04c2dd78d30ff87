package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Bounds for scrape parameters. Per-request overrides are checked against the same limits.
const (
	MinMaxDepth     = 1
	MaxMaxDepth     = 10
	MinChunkSize    = 100
	MaxChunkSize    = 5000
	MinChunkOverlap = 0
	MaxChunkOverlap = 500
)

// Vector store backends.
const (
	BackendQdrant  = "qdrant"
	BackendChromem = "chromem"
)

// Config holds all configuration for the application.
type Config struct {
	NotionAPIKey    string
	NotionBaseURL   string
	NotionVersion   string
	NotionRateLimit float64 // requests per second, shared by all scrape workers

	MaxDepth      int
	ChunkSize     int
	ChunkOverlap  int
	ScrapeWorkers int

	EmbeddingBaseURL   string // empty disables embedding generation
	EmbeddingModelName string
	EmbeddingAPIKey    string
	VectorSize         int

	VectorBackend    string
	QdrantURL        string
	QdrantCollection string
	ChromemPath      string // empty keeps the chromem collection in memory

	DBPath    string
	APIPort   string
	LogLevel  string
	LogFormat string
}

// EmbeddingsEnabled reports whether an embeddings endpoint is configured.
func (c *Config) EmbeddingsEnabled() bool {
	return c.EmbeddingBaseURL != ""
}

// SlogLevel returns the log level named by LOG_LEVEL, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads configuration from environment variables and returns a Config struct.
// A .env file in the current directory or one of its parents is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
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
		NotionAPIKey:       getEnv("NOTION_API_KEY", ""),
		NotionBaseURL:      getEnv("NOTION_BASE_URL", "https://api.notion.com/v1"),
		NotionVersion:      getEnv("NOTION_VERSION", "2022-06-28"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		VectorBackend:      strings.ToLower(getEnv("VECTOR_BACKEND", BackendQdrant)),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "notion"),
		ChromemPath:        getEnv("CHROMEM_PATH", ""),
		DBPath:             getEnv("DB_PATH", "./data/notion-intel.db"),
		APIPort:            getEnv("API_PORT", "5053"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.NotionAPIKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is required")
	}

	if cfg.NotionRateLimit, err = getEnvFloat("NOTION_RATE_LIMIT", 3); err != nil {
		return nil, err
	}
	if cfg.MaxDepth, err = getEnvInt("MAX_DEPTH", 3); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}
	if cfg.ScrapeWorkers, err = getEnvInt("SCRAPE_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.VectorSize, err = getEnvInt("VECTOR_SIZE", 1536); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := inRange("MAX_DEPTH", c.MaxDepth, MinMaxDepth, MaxMaxDepth); err != nil {
		return err
	}
	if err := inRange("CHUNK_SIZE", c.ChunkSize, MinChunkSize, MaxChunkSize); err != nil {
		return err
	}
	if err := inRange("CHUNK_OVERLAP", c.ChunkOverlap, MinChunkOverlap, MaxChunkOverlap); err != nil {
		return err
	}
	if c.ScrapeWorkers <= 0 {
		return fmt.Errorf("SCRAPE_WORKERS must be greater than 0")
	}
	if c.VectorSize <= 0 {
		return fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	if c.NotionRateLimit < 0 {
		return fmt.Errorf("NOTION_RATE_LIMIT must not be negative")
	}
	if c.VectorBackend != BackendQdrant && c.VectorBackend != BackendChromem {
		return fmt.Errorf("VECTOR_BACKEND must be %q or %q, got %q", BackendQdrant, BackendChromem, c.VectorBackend)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func inRange(key string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", key, lo, hi, v)
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

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}
