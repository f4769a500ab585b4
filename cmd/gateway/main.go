// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chat-gateway/internal/llm"
	"chat-gateway/internal/render"
	"chat-gateway/internal/tools"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	configureLogging(cfg)
	log.Info().Msg("configuration loaded")

	if cfg.ModelsFile != "" {
		if err := llm.LoadModelOverrides(cfg.ModelsFile); err != nil {
			log.Fatal().Err(err).Str("file", cfg.ModelsFile).Msg("could not load model overrides")
		}
		log.Info().Str("file", cfg.ModelsFile).Msg("model overrides loaded")
	}

	// 2. INITIALIZE SERVICES
	registry := tools.NewRegistry()
	simTime := tools.NewSimTimeClient()
	dispatcher := tools.NewDispatcher(registry, tools.Clients{
		RealWeather: tools.NewRealWeatherClient(cfg.OpenWeatherMapKey),
		SimWeather:  tools.NewSimWeatherClient(),
		RealTime:    tools.NewRealTimeClient(cfg.TimeZoneDBKey, cfg.OpenCageKey, simTime),
		SimTime:     simTime,
		Wikipedia:   tools.NewWikipediaClient(),
		Products:    tools.NewProductCatalog(),
	})
	log.Info().Int("tools", registry.ToolCount()).Msg("tool dispatcher initialized")

	togetherClient := llm.NewTogetherClient(cfg.TogetherAPIKey)
	orchestrator := llm.NewOrchestrator(togetherClient, dispatcher, registry, render.ToHTML)
	gatewayHandler := NewGatewayHandler(orchestrator)
	log.Info().Msg("all services initialized")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	engine.Use(SecurityHeaders(), RequestID())

	api := engine.Group("/api")
	{
		api.POST("/chat", gatewayHandler.HandleChat)
		api.GET("/models", gatewayHandler.HandleModels)
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// configureLogging sets the global zerolog level and, in debug mode, a
// human-readable console writer.
func configureLogging(cfg *AppConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("gateway is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server exited gracefully")
}
