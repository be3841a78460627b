package main // Entry point for the bookings service

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

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

	cfg := config.Load("bookings", "BOOKINGS_PORT", "8003")

	var bookings repository.BookingRepo = repository.NewMemoryBookingRepo()
	if dbCfg := config.LoadDBConfig(); dbCfg.Enabled() {
		db, err := database.Open(dbCfg)
		if err != nil {
			log.Fatalf("bookings: open database: %v", err)
		}
		bookings = repository.NewMySQLBookingRepo(db)
	}

	// The publisher dials lazily per publish, so an unreachable broker
	// does not keep the service from starting or serving requests.
	publisher := queue.NewAMQPPublisher(config.LoadQueueConfig())

	e := echo.New()
	e.Use(middleware.Audit(cfg.Service))
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterBookings(e, handler.NewBookingHandler(bookings, publisher))

	addr := ":" + cfg.Port
	log.Printf("bookings service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
