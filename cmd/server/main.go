package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restate/internal/config"
	"restate/internal/filter"
	"restate/internal/handler"
	"restate/internal/model"
	"restate/internal/repository"
	"restate/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("restate %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.HTTP.GinMode)

	repo, err := repository.NewPostgresRepository(cfg.Database.DSN(), cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()
	log.Println("✅ Connected to PostgreSQL database")

	// One applied-filter store per process, shared by every consumer below
	bounds := model.DefaultBounds()
	store := filter.NewStore(model.DefaultFilters())

	listings := service.NewListingService(repo, bounds, cfg.Explore.Limit)
	explore := service.NewExploreScreen(listings, store, cfg.Explore.SearchDebounce, cfg.Explore.FetchTimeout, cfg.Explore.SkipInitialFetch)
	defer explore.Close()

	// Apply navigates to the explore screen
	sessions := filter.NewSessions(store, explore, bounds, filter.SessionLimits{
		MaxOpen: cfg.Composer.MaxOpen,
		IdleTTL: cfg.Composer.IdleTTL,
	})

	log.Printf("✅ Filters ready: price %s-%s, size %s-%s sq ft, search debounce %s",
		model.FormatPrice(bounds.Price.Low()), model.FormatPrice(bounds.Price.High()),
		model.FormatSize(bounds.Size.Low()), model.FormatSize(bounds.Size.High()),
		cfg.Explore.SearchDebounce)

	router := newRouter(cfg.HTTP, handler.Handlers{
		Properties: handler.NewPropertyHandler(listings, store),
		Filters:    handler.NewFilterHandler(store, bounds),
		Composer:   handler.NewComposerHandler(sessions),
		Explore:    handler.NewExploreHandler(explore),
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Starting server on %s (API under /api/v1)", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("✅ Server stopped")
}

func newRouter(httpCfg config.HTTPConfig, h handler.Handlers) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = httpCfg.AllowedOrigins
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Last-Event-ID"}
	router.Use(cors.New(corsConfig))

	build := gin.H{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "restate", "build": build})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, build)
	})

	handler.RegisterRoutes(router, h)
	return router
}
