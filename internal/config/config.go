package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Alpharn/questionnaire/internal/storage"
	"github.com/Alpharn/questionnaire/internal/utils"
)

type Config struct {
	Environment string
	Storage     StorageConfig
}

// StorageConfig selects the persistence backend for the question collection.
type StorageConfig struct {
	Backend string // file, sqlite or memory
	Path    string
	Key     string
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; process environment wins either way.
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Storage: StorageConfig{
			Backend: getEnv("QUESTIONS_STORAGE", "file"),
			Path:    getEnv("QUESTIONS_STORAGE_PATH", "questions.json"),
			Key:     getEnv("QUESTIONS_STORAGE_KEY", storage.DefaultKey),
		},
	}, nil
}

// CreateStore creates the persistence gateway selected by the configuration.
func (c *StorageConfig) CreateStore(logger utils.Logger) (storage.Store, error) {
	switch c.Backend {
	case "file":
		logger.Info("Using file store", "path", c.Path, "key", c.Key)
		return storage.NewFileStore(c.Path, c.Key, logger), nil
	case "sqlite":
		logger.Info("Using sqlite store", "path", c.Path, "key", c.Key)
		return storage.NewSQLiteStore(c.Path, c.Key, logger)
	case "memory":
		logger.Info("Using in-memory store, nothing will be persisted")
		return storage.NewMemoryStore(), nil
	default:
		logger.Warn("Unknown storage backend, falling back to file", "backend", c.Backend)
		return storage.NewFileStore(c.Path, c.Key, logger), nil
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
