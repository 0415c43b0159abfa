package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kmercer13/villageforge/internal/agent"
	"github.com/kmercer13/villageforge/internal/config"
	"github.com/kmercer13/villageforge/internal/handlers"
	"github.com/kmercer13/villageforge/internal/logger"
	"github.com/kmercer13/villageforge/internal/middleware"
	"github.com/kmercer13/villageforge/internal/services"
	"github.com/kmercer13/villageforge/internal/services/events"
	"github.com/kmercer13/villageforge/pkg/memory"
	"github.com/kmercer13/villageforge/pkg/npc"
	"github.com/kmercer13/villageforge/pkg/state"
	"github.com/kmercer13/villageforge/pkg/textfilter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting VillageForge API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	case "groq":
		if cfg.GroqAPIKey == "" {
			log.Error("Groq API key is required when using groq provider")
			os.Exit(1)
		}
		llmService = services.NewGroqService(cfg.GroqAPIKey, cfg.ModelName, log)
		log.Info("Using Groq LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"anthropic", "groq"})
		os.Exit(1)
	}

	// Initialize the model on startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	registry := npc.NewRegistry()
	if err := registry.LoadDir(cfg.NPCDataDir); err != nil {
		log.Error("Failed to load NPC data", "error", err, "dir", cfg.NPCDataDir)
		os.Exit(1)
	}
	log.Info("Character roster loaded", "count", len(registry.List()))

	var broadcaster *events.Broadcaster
	var redisClient *redis.Client
	if cfg.EventsRedisURL != "" {
		opts, err := redis.ParseURL(cfg.EventsRedisURL)
		if err != nil {
			log.Error("Invalid events Redis URL", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Error("Failed to connect to events Redis", "error", err)
			pingCancel()
			os.Exit(1)
		}
		pingCancel()

		broadcaster = events.NewBroadcaster(redisClient, log)
		log.Info("Event broadcasting enabled")
	}

	var filter *textfilter.Filter
	if textfilter.RatingRequiresFilter(cfg.ContentRating) {
		filter = textfilter.NewFilter()
		log.Info("Content filtering enabled", "rating", cfg.ContentRating)
	}

	dialogueAgent := agent.New(
		registry,
		memory.New(cfg.MaxConversationHistory),
		state.NewPlayerState(registry.MissionCatalog()),
		llmService,
		filter,
		broadcaster,
		log,
	)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg.LLMProvider, cfg.ModelName, log)
	mux.Handle("/health", healthHandler)

	chatHandler := handlers.NewChatHandler(dialogueAgent, log)
	mux.Handle("/v1/chat", chatHandler)

	chatStreamHandler := handlers.NewChatStreamHandler(dialogueAgent, log)
	mux.Handle("/v1/chat/stream", chatStreamHandler)

	gameStateHandler := handlers.NewGameStateHandler(dialogueAgent, log)
	mux.Handle("/v1/gamestate", gameStateHandler)

	resetHandler := handlers.NewResetHandler(dialogueAgent, log)
	mux.Handle("/v1/reset", resetHandler)

	npcsHandler := handlers.NewNPCsHandler(registry, log)
	mux.Handle("/v1/npcs", npcsHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout removed to enable streaming - streaming endpoints handle their own timeouts
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis connection", "error", err)
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
