package server

import (
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
	"github.com/rs/zerolog"

	"seodash/internal/config"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
	Log zerolog.Logger
}

// New creates a new server with middleware configured.
func New(cfg *config.Config, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			}

			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   message,
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// CORS middleware
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(corsOrigins, ","),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		MaxAge:       86400,
	}))

	// Rate limiting middleware, shared through Redis when several replicas run
	limiterCfg := limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
		},
	}
	if cfg.RedisURL != "" {
		limiterCfg.Storage = redis.New(redis.Config{URL: cfg.RedisURL})
		log.Info().Msg("rate limiter using redis storage")
	}
	app.Use(limiter.New(limiterCfg))

	return &Server{
		App: app,
		Cfg: cfg,
		Log: log,
	}
}

// Start starts the server with the configured address and TLS settings.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled {
		listenConfig := fiber.ListenConfig{
			CertFile:    s.Cfg.TLSCertFile,
			CertKeyFile: s.Cfg.TLSKeyFile,
			TLSConfigFunc: func(tc *tls.Config) {
				tc.MinVersion = tls.VersionTLS12
			},
		}
		s.Log.Info().Str("addr", s.Cfg.ServerAddr).Msg("starting server with TLS")
		return s.App.Listen(s.Cfg.ServerAddr, listenConfig)
	}
	s.Log.Info().Str("addr", s.Cfg.ServerAddr).Msg("starting server")
	return s.App.Listen(s.Cfg.ServerAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
