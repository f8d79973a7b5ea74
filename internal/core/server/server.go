package server

import (
	"context"
	"fmt"
	"time"

	"chainflow-engine/internal/core/config"
	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/metrics"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "chainflow-engine/docs/swagger"
)

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg     *config.AppConfig
	metrics *metrics.Registry
	started time.Time
}

// New creates a new Server instance with configured middleware.
// A nil registry disables /metrics and request instrumentation.
func New(cfg *config.AppConfig, reg *metrics.Registry) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "chainflow-engine",
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	if reg != nil {
		app.Use(instrument(reg))
		app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App:     app,
		cfg:     cfg,
		metrics: reg,
		started: time.Now(),
	}
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds float64        `json:"uptimeSeconds"`
	Components    map[string]any `json:"components"`
}

// RegisterStatus mounts GET /api/status. components is called per request.
func (s *Server) RegisterStatus(components func() map[string]any) {
	s.App.Get("/api/status", func(c *fiber.Ctx) error {
		return c.JSON(StatusResponse{
			Status:        "operational",
			UptimeSeconds: time.Since(s.started).Seconds(),
			Components:    components(),
		})
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

// instrument records request counts and latencies by route pattern.
func instrument(reg *metrics.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		reg.RecordHTTPRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
