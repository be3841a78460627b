package main // Entry point for the reviews service

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/auth"
	"github.com/smartmeet/room-booking/internal/config"
	"github.com/smartmeet/room-booking/internal/database"
	"github.com/smartmeet/room-booking/internal/handler"
	"github.com/smartmeet/room-booking/internal/middleware"
	"github.com/smartmeet/room-booking/internal/queue"
	"github.com/smartmeet/room-booking/internal/repository"
	"github.com/smartmeet/room-booking/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("reviews", "REVIEWS_PORT", "8004")
	verifier, _ := auth.FromConfig(config.LoadAuthConfig())

	var reviews repository.ReviewRepo = repository.NewMemoryReviewRepo()
	if dbCfg := config.LoadDBConfig(); dbCfg.Enabled() {
		db, err := database.Open(dbCfg)
		if err != nil {
			log.Fatalf("reviews: open database: %v", err)
		}
		reviews = repository.NewMySQLReviewRepo(db)
	}

	// Background consumer for booking_created events. Supervised with
	// reconnect and backoff, isolated from the request-serving goroutines;
	// a broker outage never affects API availability.
	go func() {
		if err := queue.StartBookingConsumer(context.Background(), config.LoadQueueConfig(), queue.LogBookingReceipt); err != nil {
			log.Printf("reviews: booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.Audit(cfg.Service))
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterReviews(e, handler.NewReviewHandler(reviews), verifier)

	addr := ":" + cfg.Port
	log.Printf("reviews service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
