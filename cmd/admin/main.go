package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/vnmchuo/ai-admin/config"
	"github.com/vnmchuo/ai-admin/internal/admin"
	"github.com/vnmchuo/ai-admin/internal/auth"
	"github.com/vnmchuo/ai-admin/internal/seeder"
	"github.com/vnmchuo/ai-admin/internal/settings"
	"github.com/vnmchuo/ai-admin/internal/telemetry"
	"github.com/vnmchuo/ai-admin/internal/usage"
	"github.com/vnmchuo/ai-admin/pkg/ratelimit"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Init telemetry
	shutdownTracer, err := telemetry.InitTracer("ai-admin", cfg)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}
	defer shutdownTracer()
	tracer := otel.GetTracerProvider().Tracer("ai-admin")

	// 3. Connect PostgreSQL
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to ping postgres: %v", err)
	}
	log.Println("PostgreSQL connected")

	// 4. Connect Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to ping redis: %v", err)
	}
	log.Println("Redis connected")

	// 5. Access gate
	authStore := auth.NewPostgresStore(pool)
	gate := auth.NewMiddleware(authStore, rdb)
	tokens := auth.NewManager(authStore, rdb)

	// 6. Settings, cached in Redis
	settingsStore := settings.NewCachedStore(
		settings.NewPostgresStore(pool, cfg.SettingsNamespace),
		rdb, cfg.SettingsNamespace, cfg.SettingsCacheTTL,
	)
	settingsService := settings.NewService(settingsStore, tracer)

	// 7. Usage reporting
	usageStore := usage.NewPostgresStore(pool, tracer)

	// 8. Per-admin rate limit
	limiter := ratelimit.NewLimiter(rdb, cfg.AdminRateLimitRPM)

	// 9. Seed a development admin token if RUN_SEED=true
	if os.Getenv("RUN_SEED") == "true" {
		seeder.SeedAdminToken(ctx, authStore)
	}

	// 10. Router
	handler := admin.NewHandler(settingsService, usageStore, tokens, cfg.CurrencySuffix, tracer)
	r := admin.NewRouter(handler, gate, limiter.Middleware(auth.GetAdminID))

	// 11. Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("AI admin starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
