package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hiveguard/honeytrap/internal/adapter/collector"
	"github.com/hiveguard/honeytrap/internal/adapter/llm"
	"github.com/hiveguard/honeytrap/internal/config"
	"github.com/hiveguard/honeytrap/internal/oracle"
	"github.com/hiveguard/honeytrap/internal/repository"
	"github.com/hiveguard/honeytrap/internal/service"
	"github.com/hiveguard/honeytrap/internal/session"
	handler "github.com/hiveguard/honeytrap/internal/transport/http"
	"github.com/hiveguard/honeytrap/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting honeytrap orchestrator...")
	log.Printf("External HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Internal HTTP Port: %d", cfg.InternalPort)
	log.Printf("Audit database: %s", cfg.DatabaseURL)
	log.Printf("LLM URL: %s (model %s)", cfg.LLMBaseURL, cfg.LLMModel)

	if cfg.APIKey == "" {
		log.Fatalf("API_KEY must be set")
	}
	if cfg.CallbackURL == "" {
		log.Printf("WARN: CALLBACK_URL is not set; finalization callbacks will fail")
	}

	// Initialize audit store
	events, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize audit store: %v", err)
	}
	defer events.Close()

	// Initialize LLM client and oracle
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	o := oracle.New(llmClient, cfg.LLMModel, cfg.HistoryWindow)

	// Initialize collector client
	collectorClient := collector.NewClient(cfg.CallbackURL, cfg.CallbackTimeout)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize session store and service
	sessions := session.NewStore()
	svc := service.New(sessions, events, o, collectorClient, policyEngine, cfg)

	// Create servers
	externalServer := handler.NewExternalServer(svc, cfg.APIKey)
	internalServer := handler.NewInternalServer(svc)

	// Start external server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := externalServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start external server: %v", err)
		}
	}()

	// Start internal server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.InternalPort)
		if err := internalServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start internal server: %v", err)
		}
	}()

	log.Printf("External API started on port %d", cfg.HTTPPort)
	log.Printf("Internal API started on port %d", cfg.InternalPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down orchestrator...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := externalServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown external server gracefully: %v", err)
	}
	if err := internalServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown internal server gracefully: %v", err)
	}

	log.Println("Orchestrator stopped")
}
