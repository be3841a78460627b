package main // Entry point for the rooms service

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/config"
	"github.com/smartmeet/room-booking/internal/database"
	"github.com/smartmeet/room-booking/internal/handler"
	"github.com/smartmeet/room-booking/internal/middleware"
	"github.com/smartmeet/room-booking/internal/repository"
	"github.com/smartmeet/room-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // best-effort; a missing .env is fine

	cfg := config.Load("rooms", "ROOMS_PORT", "8001")

	var rooms repository.RoomRepo = repository.NewMemoryRoomRepo()
	if dbCfg := config.LoadDBConfig(); dbCfg.Enabled() {
		db, err := database.Open(dbCfg)
		if err != nil {
			log.Fatalf("rooms: open database: %v", err)
		}
		rooms = repository.NewMySQLRoomRepo(db)
	}

	e := echo.New()
	e.Use(middleware.Audit(cfg.Service))
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterRooms(e, handler.NewRoomHandler(rooms))

	addr := ":" + cfg.Port
	log.Printf("rooms service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
