package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/config"
	"github.com/smartbrain-app/smartbrain-api/database"
	"github.com/smartbrain-app/smartbrain-api/detector"
	handler "github.com/smartbrain-app/smartbrain-api/handlers"
	"github.com/smartbrain-app/smartbrain-api/middleware"
	"github.com/smartbrain-app/smartbrain-api/quota"
	"github.com/smartbrain-app/smartbrain-api/router"
	"github.com/smartbrain-app/smartbrain-api/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.SeedDemoUsers {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	users := store.NewUserStore(db)
	ledger := store.NewUsageLedger(db)
	logins := store.NewLoginHistoryStore(db)
	policy := quota.NewPolicy(users, ledger, cfg.MaxRequestsPerMonth, cfg.ResetDay)
	det := detector.NewClarifaiClient(cfg.Clarifai, cfg.DetectorTimeout)

	h := handler.New(cfg, users, logins, ledger, policy, det)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))
	app.Use(middleware.CheckOrigin(cfg.AllowedOrigins))

	router.SetupRoutes(app, h)

	// 404 fallthrough
	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NotFound("Route")
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down gracefully...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Server listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	if err := database.Close(db); err != nil {
		log.Printf("Error closing the database connection: %v", err)
	}
	log.Println("Graceful shutdown completed")
}
