package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/adapter/llm"
	"github.com/xiaot623/gogo/foodai/internal/completion"
	"github.com/xiaot623/gogo/foodai/internal/config"
	"github.com/xiaot623/gogo/foodai/internal/history"
	"github.com/xiaot623/gogo/foodai/internal/repository"
	"github.com/xiaot623/gogo/foodai/internal/service"
	server "github.com/xiaot623/gogo/foodai/internal/transport/http"
	"github.com/xiaot623/gogo/foodai/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.Infof("Starting FoodAI Assistant...")
	log.Infof("HTTP Port: %d", cfg.HTTPPort)
	log.Infof("Database: %s", cfg.DatabaseURL)
	log.Infof("LLM provider: %s (model %s)", cfg.LLMProvider, cfg.Model())

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize LLM client
	llmClient, err := llm.NewLLMClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	invoker := completion.NewInvoker(llmClient, cfg.Model(), cfg.LLMTimeout)

	// Initialize session memory
	sessions := history.NewMemoryStore(history.Options{
		TTL:      cfg.SessionTTL,
		MaxTurns: cfg.SessionMaxTurns,
	})

	// Initialize policy engine
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, sessions, invoker, policyEngine)

	e := server.NewServer(svc, cfg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Infof("FoodAI Assistant API running on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down FoodAI Assistant...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown server gracefully: %v", err)
	}

	log.Info("FoodAI Assistant stopped")
}
