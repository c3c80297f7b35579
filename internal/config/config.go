package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Version is reported by the banner endpoint.
const Version = "1.0.0"

type Config struct {
	ProjectID      string
	LogLevel       string
	Port           string
	Environment    string
	Timezone       string
	AllowedOrigins []string
	AuthEnabled    bool
}

// New reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID:      os.Getenv("PROJECTID"),
		LogLevel:       os.Getenv("LOGLEVEL"),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		Timezone:       os.Getenv("TIMEZONE"),
		AllowedOrigins: splitList(getEnv("ALLOWEDORIGINS", "http://localhost:3000")),
		AuthEnabled:    getBool("AUTHENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
