package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Settings holds all runtime configuration, sourced from the environment with
// an optional .env file for local runs.
type Settings struct {
	Port      string
	MongoURI  string
	MongoDB   string
	StaticDir string
	IndexFile string
	LogFile   string
}

// Load reads settings from the environment. Every value has a default so a
// bare `go run .` against a local MongoDB works.
func Load() Settings {
	_ = godotenv.Load()

	return Settings{
		Port:      getEnv("PORT", "3000"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "fitlog"),
		StaticDir: getEnv("STATIC_DIR", "public"),
		IndexFile: getEnv("INDEX_FILE", filepath.Join("views", "index.html")),
		LogFile:   os.Getenv("LOG_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
