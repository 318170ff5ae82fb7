package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindshift/internal/app"
	"mindshift/internal/config"
	"mindshift/internal/metrics"
	"mindshift/internal/repository"
	"mindshift/internal/service"
	"mindshift/internal/transport/rest"
	"mindshift/internal/transport/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	ctx := context.Background()

	if cfg.Generator.IsEnabled() {
		slog.Info("statement generator configured", "model", cfg.Generator.Model, "base_url", cfg.Generator.BaseURL)
	} else {
		slog.Warn("GROQ_API_KEY not set, serving fallback statements")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		slog.Error("failed to ping MongoDB", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to MongoDB", "db", cfg.MongoDB)

	db := mongoClient.Database(cfg.MongoDB)
	repository.EnsureIndexes(ctx, db)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("failed to ping Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to Redis", "addr", cfg.RedisAddr())

	deps := app.New(db, rdb)

	// Reference data and the inference engine
	engine, err := app.BuildEngine(ctx, cfg.Scoring, deps.TraitRepo)
	if err != nil {
		slog.Error("failed to build scoring engine", "error", err)
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewPrometheusObserver(registry)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()

	// Initialize services
	generator := service.NewCachedGenerator(
		service.NewGroqGenerator(cfg.Generator, observer),
		cfg.Generator.CacheSize, cfg.Generator.CacheTTL, observer,
	)
	authSvc := service.NewAuthService(cfg.JWTSecret)
	questionSvc := service.NewQuestionService(generator, engine.Bank(), deps.QuestionCache, deps.ThemeCache)
	profileSvc := service.NewProfileService(engine, deps.ProfileRepo, deps.ProfileCache, deps.TypeStats, deps.ThemeCache, observer)
	recommendationSvc := service.NewRecommendationService(engine.Traits(), profileSvc, deps.EventRepo)
	blocklistSvc := service.NewBlocklistService(deps.Blocklist)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	profileSvc.SetBroadcaster(wsHub)
	recommendationSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:           authSvc,
		QuestionService:       questionSvc,
		ProfileService:        profileSvc,
		RecommendationService: recommendationSvc,
		BlocklistService:      blocklistSvc,
		WSHub:                 wsHub,
		Metrics:               promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORS: rest.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
		},
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
