package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ethanbaker/visionsync/internal/api/middleware"
	"github.com/ethanbaker/visionsync/internal/config"
	"github.com/ethanbaker/visionsync/pkg/realtime"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	health_module "github.com/ethanbaker/visionsync/internal/api/modules/health"
	static_module "github.com/ethanbaker/visionsync/internal/api/modules/static"
	token_module "github.com/ethanbaker/visionsync/internal/api/modules/token"
)

const shutdownTimeout = 10 * time.Second

// NewEngine builds the HTTP engine from an explicit configuration
func NewEngine(cfg *config.Config, issuer token_module.Issuer) *gin.Engine {
	// Add app level settings/routes
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	engine.Use(middleware.RequestID())

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"OPTIONS", "GET", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	assets := static_module.NewHandler(cfg.StaticRoot())
	if !assets.HasIndex() {
		log.Printf("[API-MAIN]: Warning, no %s in %s", static_module.IndexFile, assets.Root())
	}

	// Token proxy first so the catch-all never shadows it
	token_module.RegisterRoutes(engine, issuer)

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")
	health_module.RegisterRoutes(baseGroup, cfg.Mode, assets)

	// SPA fallback last
	static_module.RegisterRoutes(engine, assets)

	return engine
}

// Start serves the application until ctx is cancelled
func Start(ctx context.Context, cfg *config.Config) error {
	if cfg.Mode == config.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	issuer := realtime.NewClient(cfg.RealtimeOptions())
	if cfg.OpenAIAPIKey == "" {
		log.Println("[API-MAIN]: Warning, OPENAI_API_KEY is not set; /token will fail upstream")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewEngine(cfg, issuer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API-MAIN]: Server running on *:%s (%s, serving %s)", cfg.Port, cfg.Mode, cfg.StaticRoot())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[API-MAIN]: Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
