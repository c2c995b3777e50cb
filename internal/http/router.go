package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/padhaihub/tutorhub/internal/ai"
	"github.com/padhaihub/tutorhub/internal/config"
	"github.com/padhaihub/tutorhub/internal/http/handlers"
	"github.com/padhaihub/tutorhub/internal/http/middlewares"
	"github.com/padhaihub/tutorhub/internal/observability"
	"github.com/padhaihub/tutorhub/internal/repo/postgres"
	"github.com/padhaihub/tutorhub/web"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(
	log *slog.Logger,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	prom *observability.Prom,
	metricsHandler http.Handler,
	cfg config.Config,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("tutorhub"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// wire up repositories and provider clients
	usersRepo := postgres.NewUsersRepo(pool, prom)
	historyRepo := postgres.NewHistoryRepo(pool, prom)

	gemini := ai.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, prom)
	openrouter := ai.NewOpenRouterClient(ai.OpenRouterConfig{
		BaseURL: cfg.OpenRouterBaseURL,
		APIKey:  cfg.OpenRouterAPIKey,
		Model:   cfg.OpenRouterModel,
		Referer: cfg.SiteURL,
		Title:   cfg.SiteName,
	}, prom)

	askHandler := handlers.NewAskHandler(usersRepo, historyRepo, gemini, log)
	historyHandler := handlers.NewHistoryHandler(historyRepo)
	loginHandler := handlers.NewLoginHandler(usersRepo)
	tokenAskHandler := handlers.NewTokenAskHandler(usersRepo, historyRepo, openrouter, log)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())

	if rdb != nil {
		limiter := middlewares.NewRateLimiter(rdb, cfg.RateLimit, time.Duration(cfg.RateWindowSec)*time.Second)
		api.Use(limiter.Middleware(middlewares.KeyByIP))
	}

	api.POST("/ask", askHandler.Ask)
	api.POST("/history", historyHandler.List)
	api.POST("/login", loginHandler.Login)
	// historical route name: this is the token-gated ask, not account creation
	api.POST("/signup", tokenAskHandler.Ask)

	// embedded client pages
	pages := web.Pages()
	r.GET("/", func(ctx *gin.Context) {
		ctx.FileFromFS("dashboard.html", http.FS(pages))
	})
	r.GET("/login", func(ctx *gin.Context) {
		ctx.FileFromFS("login.html", http.FS(pages))
	})

	return r
}
