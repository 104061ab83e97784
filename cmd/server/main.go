package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/harukimz/timetable-share/internal/config"
	"github.com/harukimz/timetable-share/internal/database"
	"github.com/harukimz/timetable-share/internal/handler"
	"github.com/harukimz/timetable-share/internal/middleware"
	"github.com/harukimz/timetable-share/internal/queue"
	"github.com/harukimz/timetable-share/internal/repository"
	"github.com/harukimz/timetable-share/internal/router"
	"github.com/harukimz/timetable-share/internal/session"
)

func main() {
	// .env is optional; real deployments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb, sessionTTL)
	} else {
		// Sessions survive only as long as the process; fine for local
		// development, not for multi-instance deployments.
		log.Println("redis unavailable, falling back to in-memory sessions")
		store = session.NewMemoryStore(sessionTTL)
	}

	users := repository.NewUserRepo(db)
	timetables := repository.NewTimetableRepo(db)
	friends := repository.NewFriendRepo(db)
	conversations := repository.NewConversationRepo(db)
	messages := repository.NewMessageRepo(db)
	profiles := repository.NewProfileRepo(db)

	friendHandler := handler.NewFriendHandler(friends, users, timetables)
	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, store),
		Timetable: handler.NewTimetableHandler(timetables),
		Friend:    friendHandler,
		QR:        &handler.QRHandler{Users: users, Friends: friendHandler},
		Message:   &handler.MessageHandler{Conversations: conversations, Messages: messages, Friends: friends},
		Profile:   &handler.ProfileHandler{Profiles: profiles, Users: users, Friends: friends},
	}

	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.Register(e, h, store, rateLimit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
