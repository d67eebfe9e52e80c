package api

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resthub/account_service/config"
	"github.com/resthub/account_service/infra/queue"
	"github.com/resthub/account_service/internal/api/rest/handlers"
	"github.com/resthub/account_service/internal/api/rest/middleware"
	"github.com/resthub/account_service/internal/domain"
	"github.com/resthub/account_service/internal/helper"
	"github.com/resthub/account_service/internal/repository"
	"github.com/resthub/account_service/internal/services"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return ctx.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			log.Printf("unhandled error: %v", err)
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	// ---------- Middleware ----------
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use("/api/user", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests from this IP address, please try again later",
			})
		},
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	mailProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.AccessTokenTTL)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, tokenRepo)
	authSvc := services.NewAuthService(userRepo, userSvc, authHelper, mailProducer, cfg.ResetTokenTTL)

	// ---------- Handlers ----------
	authRequired := middleware.AuthMiddleware(authHelper)
	guestOnly := middleware.GuestOnly(authHelper)

	api := app.Group("/api")
	handlers.NewUserHandler(userSvc).SetupRoutes(api, authRequired)
	handlers.NewAuthHandler(authSvc, cfg.Env).SetupRoutes(api, authRequired, guestOnly)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- 404 ----------
	app.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("cannot find %s on this server", ctx.OriginalURL()),
		})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
