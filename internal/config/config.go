package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Web Server
	Bind string

	// PublicBaseURL is what join QR codes point at (the separately
	// hosted presentation layer).
	PublicBaseURL string

	// AllowedOrigins for CORS, comma-separated in the env
	AllowedOrigins []string

	// Game data
	ScenarioPath      string
	InstructionSlides int
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Bind:           getEnvDefault("BIND", "0.0.0.0:8080"),
		PublicBaseURL:  getEnvDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		AllowedOrigins: strings.Split(getEnvDefault("ALLOWED_ORIGINS", "*"), ","),
		ScenarioPath:   getEnvDefault("SCENARIO_PATH", "data/scenarios.json"),
	}

	slides, err := strconv.Atoi(getEnvDefault("INSTRUCTION_SLIDES", "12"))
	if err != nil || slides < 1 {
		return nil, fmt.Errorf("INSTRUCTION_SLIDES must be a positive integer")
	}
	cfg.InstructionSlides = slides

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
