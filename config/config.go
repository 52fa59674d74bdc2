/* config.go
 * Contains the Config struct and Load function. Values come from the environment, optionally seeded from a .env
 * file in the working directory
 * Authors: scouting-admin contributors
 */

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND
const (
	BackendMongo     = "mongo"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	Backend string

	MongoURI    string
	MongoDBName string

	FirestoreProjectID       string
	FirestoreCredentialsFile string

	HTTPAddr    string
	CORSOrigins []string

	DiscordToken     string
	DiscordChannelID string

	LogLevel slog.Level

	// Admin is only validated when a season is created
	Admin AdminDefaults
}

// Load reads the configuration from the environment. A missing .env file is not an error.
// Preconditions: None
// Postconditions: Returns the Config, or an error naming the first missing or invalid value for the selected backend
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend:                  strings.ToLower(envOrDefault("STORE_BACKEND", BackendMongo)),
		MongoURI:                 envOrDefault("MONGO_URI", ""),
		MongoDBName:              envOrDefault("MONGO_DB_NAME", "scouting"),
		FirestoreProjectID:       envOrDefault("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredentialsFile: envOrDefault("FIRESTORE_CREDENTIALS_FILE", ""),
		HTTPAddr:                 envOrDefault("HTTP_ADDR", ":8080"),
		CORSOrigins:              listEnvOrDefault("CORS_ORIGINS", []string{"*"}),
		DiscordToken:             envOrDefault("DISCORD_TOKEN", ""),
		DiscordChannelID:         envOrDefault("DISCORD_CHANNEL_ID", ""),
		Admin:                    AdminDefaultsFromEnv(),
	}

	level, err := ParseLogLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.Backend {
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is not set")
		}
	case BackendFirestore:
		if cfg.FirestoreProjectID == "" {
			return nil, fmt.Errorf("FIRESTORE_PROJECT_ID environment variable is not set")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q, expected mongo, firestore or memory", cfg.Backend)
	}

	return cfg, nil
}

// ParseLogLevel maps debug, info, warn and error onto slog levels
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
