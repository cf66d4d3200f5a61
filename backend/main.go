package main

import (
	"context"
	"log"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/routes"
	"lms/backend/services/cache"
	"lms/backend/services/payment"
	paymentdummy "lms/backend/services/payment/dummy"
	stripepay "lms/backend/services/payment/stripe"
	"lms/backend/services/storage"
	storagedummy "lms/backend/services/storage/dummy"
	s3store "lms/backend/services/storage/s3"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Course catalog cache (no-op when REDIS_ADDR is unset)
	courseCache := cache.New(cfg.RedisAddr)

	// Payment provider
	var payments payment.Provider
	if cfg.StripeSecretKey != "" {
		payments = stripepay.NewProvider(cfg.StripeSecretKey)
	} else {
		logger.Println("STRIPE_SECRET_KEY not set, using dummy payment provider")
		payments = paymentdummy.NewProvider()
	}

	// Object storage
	var files storage.Service
	if cfg.S3Bucket != "" {
		files, err = s3store.NewService(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.CDNDomain)
		if err != nil {
			log.Fatalf("Error initializing object storage: %v", err)
		}
	} else {
		logger.Println("S3_BUCKET_NAME not set, using dummy storage service")
		files = storagedummy.NewService()
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, courseCache, payments, files)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
