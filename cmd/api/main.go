package main

import (
	"context"
	"log"
	stdhttp "net/http"

	"shortlink/pkg/cache"
	"shortlink/pkg/config"
	"shortlink/pkg/http"
	"shortlink/pkg/logging"
	"shortlink/pkg/service"
	"shortlink/pkg/storage"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(logging.LogLevel(cfg.LogLevel))

	// DB connection
	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := storage.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// Redis connection
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := redis.NewClient(opt)
	defer redisClient.Close()

	// Cache
	linkCache := cache.NewLinkCache(redisClient)

	// Storage
	linkStorage := storage.NewPostgresLinkStorage(pool)

	// Service
	linkService := service.NewLinkService(linkStorage, linkCache, service.NewRandomCodeGenerator(), logger)
	linkService.SetCacheTTL(cfg.Cache.TTL)

	// Handler
	handler := http.NewHandler(linkService, cfg.Server.BaseURL)

	// Router
	r := chi.NewRouter()
	http.SetupRoutes(r, handler, logger)

	// Server
	log.Println("Starting API server on " + cfg.Server.Addr)
	log.Fatal(stdhttp.ListenAndServe(cfg.Server.Addr, r))
}
