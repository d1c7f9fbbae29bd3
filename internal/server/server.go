package server

import (
	"backend-contravento/internal/auth"
	"backend-contravento/internal/config"
	"backend-contravento/internal/location"
	"backend-contravento/internal/profile"
	"backend-contravento/internal/social"
	"backend-contravento/internal/storage"
	"backend-contravento/internal/stream"
	"backend-contravento/internal/telemetry"
	"backend-contravento/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	profile.RegisterRoutes(s.App.Group("/profiles"), profile.NewService(s.DB), jwtMiddleware)
	trip.RegisterRoutes(s.App.Group("/trips"), trip.NewService(s.DB, s.Stream), jwtMiddleware)
	telemetry.RegisterRoutes(s.App.Group("/telemetry"), jwtMiddleware)
	social.RegisterRoutes(s.App.Group("/social"), social.NewService(s.DB), jwtMiddleware)
	location.RegisterRoutes(s.App.Group("/locations"), location.NewService(s.DB, location.NewGeocoder(s.Cfg.GeocoderURL)), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB, s.Cfg.MediaBaseURL), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
