package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/config"
	"github.com/iliyamo/streamtv/internal/database"
	"github.com/iliyamo/streamtv/internal/handler"
	"github.com/iliyamo/streamtv/internal/middleware"
	"github.com/iliyamo/streamtv/internal/queue"
	"github.com/iliyamo/streamtv/internal/repository"
	"github.com/iliyamo/streamtv/internal/router"
	queue_publisher "github.com/iliyamo/streamtv/internal/service"
	"github.com/iliyamo/streamtv/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		// Sessions live in redis; without it nobody can log in.
		log.Fatal("redis unavailable: session store cannot start")
	}
	store := session.NewRedisStore(rdb)

	customers := repository.NewCustomerRepo(db)
	shows := repository.NewShowRepo(db)
	episodes := repository.NewEpisodeRepo(db)
	actors := repository.NewActorRepo(db)
	queueRepo := repository.NewQueueRepo(db)
	watched := repository.NewWatchedRepo(db)

	auth := handler.NewAuthHandler(cfg, customers, store)
	catalog := &handler.CatalogHandler{Shows: shows, Episodes: episodes, Actors: actors, Queue: queueRepo}
	activity := &handler.ActivityHandler{
		Queue:    queueRepo,
		Watched:  watched,
		Shows:    shows,
		Episodes: episodes,
		Publish:  queue_publisher.PublishActivity,
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.SessionSecret, store)
	router.RegisterCatalog(e, catalog, cfg.SessionSecret, store,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterActivity(e, activity, cfg.SessionSecret, store)

	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
