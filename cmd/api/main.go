package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/buhba/boba-diary-engine/internal/adapters/cache"
	adapterHTTP "github.com/buhba/boba-diary-engine/internal/adapters/handler/http"
	"github.com/buhba/boba-diary-engine/internal/adapters/repository"
	"github.com/buhba/boba-diary-engine/internal/config"
	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/services"
	"github.com/buhba/boba-diary-engine/internal/core/workers"
)

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := repository.RunMigrations(db); err != nil {
		log.Fatalf("Critical: Failed to run migrations: %v", err)
	}

	log.Println("Database connected and migrated.")

	// Redis is optional. Without it the diary serves uncached reads and
	// skips rate limiting.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, running without cache: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var entryRepo domain.EntryRepository = repository.NewPostgresEntryRepository(db)
	if redisClient != nil {
		entryRepo = repository.NewCachedEntryRepository(entryRepo, redisClient)
	}

	worker := workers.NewSummaryWorker(entryRepo, redisClient)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	entryService := services.NewEntryService(entryRepo, worker)
	statsService := services.NewStatsService(entryRepo, redisClient)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		EntryHandler: adapterHTTP.NewEntryHandler(entryService),
		StatsHandler: adapterHTTP.NewStatsHandler(statsService),
		DB:           db,
		Redis:        redisClient,
		StartTime:    startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Boba Diary Engine running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
