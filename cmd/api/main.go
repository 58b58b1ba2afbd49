package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"clubdesk/internal/config"
	"clubdesk/internal/database"
	"clubdesk/internal/middleware"
	"clubdesk/internal/modules/booking"
	"clubdesk/internal/modules/events"
	"clubdesk/internal/modules/schedule"
	"clubdesk/internal/modules/spaces"
	"clubdesk/internal/modules/wifi"
	jwtsvc "clubdesk/internal/pkg/jwt"
	"clubdesk/internal/realtime"
	"clubdesk/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	slotRepo := repository.NewSlotRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	eventRepo := repository.NewEventRepository(db)
	vacationRepo := repository.NewVacationRepository(db)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
	}

	grid, err := booking.NewGrid(cfg.DayStart, cfg.DayEnd)
	if err != nil {
		log.Fatal(err)
	}

	hub := realtime.NewHub()
	watcher := realtime.NewWatcher(slotRepo, hub, rdb)
	watcher.Run(context.Background())

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	bookingService := booking.NewService(slotRepo, grid, cfg.Spaces, cfg.SpaceGroups, watcher)
	bookingHandler := booking.NewHandler(bookingService)

	scheduleService := schedule.NewService(shiftRepo, eventRepo, vacationRepo, cfg.Workers, cfg.VacationDaysCap)
	scheduleHandler := schedule.NewHandler(scheduleService)

	eventService := events.NewService(eventRepo, cfg.Spaces)
	eventHandler := events.NewHandler(eventService)

	spacesHandler := spaces.NewHandler(cfg.Spaces, cfg.SpaceGroups)
	wifiHandler := wifi.NewHandler(cfg.WifiSSID, cfg.WifiPassword)
	wsHandler := realtime.NewHandler(hub, watcher)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		bookingHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)
		eventHandler.RegisterPublicRoutes(v1)
		spacesHandler.RegisterRoutes(v1)
		wifiHandler.RegisterRoutes(v1)

		// protected (mutations)
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterProtectedRoutes(protected)
			scheduleHandler.RegisterProtectedRoutes(protected)
			eventHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
