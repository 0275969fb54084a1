package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"breedlens/internal/breed"
	"breedlens/internal/breed/gemini"
	"breedlens/internal/breed/openai"
	"breedlens/internal/breed/stub"
	"breedlens/internal/config"
	"breedlens/internal/handlers"
	"breedlens/internal/metrics"
	"breedlens/internal/middleware"
)

const (
	EndPointHealth    = "/health"
	EndPointMetrics   = "/metrics"
	EndPointRecognize = "/api/v1/recognize"
	EndPointEngines   = "/api/v1/engines"
)

func main() {
	cfg := config.Load()

	log.Info("Starting the breedlens service...")

	engines := &breed.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		Stub:   stub.New(),
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		engines.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if _, err := engines.Get(cfg.DefaultEngine); err != nil {
		log.Fatalf("default engine: %v", err)
	}

	metrics.Register()

	h := handlers.New(cfg, engines)

	// Setup router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	router.Use(middleware.RequestID())

	router.GET(EndPointHealth, h.Health)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	rateLimited := router.Group("/")
	rateLimited.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	{
		rateLimited.POST(EndPointRecognize, h.Recognize)
		rateLimited.GET(EndPointEngines, h.Engines)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("listening on port %s, default engine %s", cfg.Port, cfg.DefaultEngine)
		log.Infof("rate limit: %d requests per minute", cfg.RateLimitPerMinute)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Info("server exited")
}
