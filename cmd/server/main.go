package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lifo-app/lifo-server/internal/api"
	"github.com/lifo-app/lifo-server/internal/config"
	"github.com/lifo-app/lifo-server/internal/domain"
	"github.com/lifo-app/lifo-server/internal/llm"
	"github.com/lifo-app/lifo-server/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	llmClient, err := llm.NewClient(config.LLMProvider(), config.OpenAIAPIKey(), config.ChatModel())
	if err != nil {
		logger.Fatal("LLM client initialization failed", zap.String("provider", config.LLMProvider()), zap.Error(err))
	}
	logger.Info("LLM client initialized", zap.String("provider", config.LLMProvider()), zap.String("model", config.ChatModel()))

	// Profiles and the journal log are an enhancement: when the store
	// cannot be configured the chat flow runs without them.
	var profiles domain.ProfileStore
	var conversations domain.ConversationStore

	switch config.StorageBackend() {
	case "memory":
		mem := store.NewMemoryStore()
		profiles, conversations = mem, mem
		logger.Info("using in-memory store")
	default:
		projectID := config.FirebaseProjectID()
		appID := config.FirebaseAppID()
		if projectID == "" || appID == "" {
			logger.Warn("FIREBASE_PROJECT_ID/FIREBASE_APP_ID not set, personalization disabled")
			break
		}
		st, err := store.NewStore(ctx, projectID, appID)
		if err != nil {
			logger.Warn("Firestore store initialization failed, personalization disabled", zap.Error(err))
			break
		}
		defer func() { _ = st.Close() }()
		profiles, conversations = st, st
		logger.Info("connected to Firestore", zap.String("project", projectID), zap.String("app", appID))
	}

	app := api.NewApp(llmClient, profiles, conversations, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
