package main // Entry point for the users service

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/auth"
	"github.com/smartmeet/room-booking/internal/config"
	"github.com/smartmeet/room-booking/internal/database"
	"github.com/smartmeet/room-booking/internal/handler"
	"github.com/smartmeet/room-booking/internal/middleware"
	"github.com/smartmeet/room-booking/internal/repository"
	"github.com/smartmeet/room-booking/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("users", "USERS_PORT", "8002")
	authCfg := config.LoadAuthConfig()
	_, issuer := auth.FromConfig(authCfg)

	var users repository.UserRepo = repository.NewMemoryUserRepo()
	if dbCfg := config.LoadDBConfig(); dbCfg.Enabled() {
		db, err := database.Open(dbCfg)
		if err != nil {
			log.Fatalf("users: open database: %v", err)
		}
		users = repository.NewMySQLUserRepo(db)
	}

	e := echo.New()
	e.Use(middleware.Audit(cfg.Service))
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterCommon(e)
	router.RegisterUsers(e, handler.NewUserHandler(users, issuer, authCfg.BcryptCost))

	addr := ":" + cfg.Port
	log.Printf("users service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
