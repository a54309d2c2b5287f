package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/config"
	"github.com/openstay/hotel-room-booking/internal/database"
	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/handler"
	"github.com/openstay/hotel-room-booking/internal/middleware"
	"github.com/openstay/hotel-room-booking/internal/queue"
	"github.com/openstay/hotel-room-booking/internal/repository"
	"github.com/openstay/hotel-room-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	g := guard.New(users)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	hotelH := handler.NewHotelHandler(hotels, rooms)
	roomH := handler.NewRoomHandler(rooms, hotels, bookings)
	bookingH := handler.NewBookingHandler(bookings, rooms, hotels)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional infrastructure: without it the rate limiter
	// and response cache turn into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, g, cfg.JWTSecret)
	router.RegisterPublic(e, hotelH, roomH, cache)
	router.RegisterOwner(e, hotelH, roomH, g, cfg.JWTSecret)
	router.RegisterBookings(e, bookingH, g, cfg.JWTSecret)
	router.RegisterAdmin(e, hotelH, g, cfg.JWTSecret)

	// Background consumer turning booking status events into the audit
	// log. It reconnects on its own; a broker outage never stops HTTP.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
