package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lifo-app/lifo-server/internal/api/handlers"
	mw "github.com/lifo-app/lifo-server/internal/api/middleware"
	"github.com/lifo-app/lifo-server/internal/buildconfig"
	"github.com/lifo-app/lifo-server/internal/config"
	"github.com/lifo-app/lifo-server/internal/domain"
	"github.com/lifo-app/lifo-server/internal/llm"
	"github.com/lifo-app/lifo-server/internal/service"
	"github.com/lifo-app/lifo-server/internal/store"
)

// App holds the router and process-level metrics.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires the request pipeline. The completion client and stores
// are constructed once by the caller and injected; nil stores disable
// personalization, insight extraction, and the journal log while the
// chat flow keeps working.
func NewApp(llmClient domain.LLMClient, profiles domain.ProfileStore, conversations domain.ConversationStore, logger *zap.Logger) *App {
	chatSvc := service.NewChatService(llmClient, profiles, conversations, config.SummaryOfferThreshold(), logger)
	chatHandler := handlers.NewChatHandler(chatSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler.Respond)
		r.Get("/conversations", chatHandler.ListConversations)
	})

	return app
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": buildconfig.Version(),
			"commit":  buildconfig.Commit(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.ProfileStore      = (*store.Store)(nil)
	_ domain.ProfileStore      = (*store.MemoryStore)(nil)
	_ domain.ConversationStore = (*store.Store)(nil)
	_ domain.ConversationStore = (*store.MemoryStore)(nil)
	_ domain.LLMClient         = (*llm.OpenAIClient)(nil)
	_ domain.LLMClient         = (*llm.MockClient)(nil)
)
