package main

import (
	"context"
	"log"
	stdhttp "net/http"

	"shortlink/pkg/cache"
	"shortlink/pkg/config"
	httphandler "shortlink/pkg/http"
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
	handler := httphandler.NewHandler(linkService, cfg.Server.BaseURL)

	// Router
	r := chi.NewRouter()
	httphandler.SetupRedirectRoutes(r, handler, logger)

	// Server
	log.Println("Starting redirect server on " + cfg.Redirect.Addr)
	log.Fatal(stdhttp.ListenAndServe(cfg.Redirect.Addr, r))
}
