// In file: cmd/gateway/config.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds all process configuration, loaded once at startup and
// read-only afterwards.
type AppConfig struct {
	TogetherAPIKey    string
	OpenWeatherMapKey string
	TimeZoneDBKey     string
	OpenCageKey       string

	// DemoMode lets the gateway run without a Together key; tool clients
	// then serve simulated data.
	DemoMode bool
	Debug    bool
	Port     string

	// ModelsFile optionally overrides the built-in model-settings table.
	ModelsFile string
}

// LoadConfig reads a .env file in local development and the environment
// everywhere. A missing Together key is fatal unless DEMO_MODE is set.
func LoadConfig() (*AppConfig, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("no .env file found for local development")
		}
	}

	cfg := &AppConfig{
		TogetherAPIKey:    os.Getenv("TOGETHER_API_KEY"),
		OpenWeatherMapKey: os.Getenv("OPENWEATHERMAP_API_KEY"),
		TimeZoneDBKey:     os.Getenv("TIMEZONEDB_API_KEY"),
		OpenCageKey:       os.Getenv("OPENCAGE_API_KEY"),
		DemoMode:          envBool("DEMO_MODE"),
		Debug:             envBool("DEBUG"),
		Port:              os.Getenv("PORT"),
		ModelsFile:        os.Getenv("MODELS_FILE"),
	}
	if cfg.Port == "" {
		cfg.Port = "5001"
	}

	if cfg.TogetherAPIKey == "" && !cfg.DemoMode {
		return nil, fmt.Errorf("TOGETHER_API_KEY environment variable is not set; set DEMO_MODE=true to run without an API key")
	}
	return cfg, nil
}

// envBool accepts the usual truthy spellings: true, 1, yes.
func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
