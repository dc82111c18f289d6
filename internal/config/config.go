package config

import (
	"os"
	"strings"
)

// Config carries all environment-driven settings. Everything has a local
// default so the server can start against a dev MongoDB with no .env at all.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	APIKey      string
	BaseURL     string
	Model       string
	FrontendURL string
	LogLevel    string
}

const SubmissionsCollection = "submissions"

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8000"),
		MongoURI:    getenv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:      getenv("DB_NAME", "feedback_db"),
		APIKey:      getenv("OPENAI_API_KEY", ""),
		BaseURL:     getenv("OPENAI_BASE_URL", ""),
		Model:       getenv("OPENAI_MODEL", "gpt-4o-mini"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
