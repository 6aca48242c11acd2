// Package server exposes stored layouts and remote selector sessions over
// HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/config"
	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/store"
)

// Server is the shelfview HTTP service.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	store    *store.Store
	sessions *Sessions
	cache    *layout.Cache
	log      *zap.Logger
}

// New wires the routes. The store must be open.
func New(cfg *config.Config, st *store.Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		sessions: NewSessions(cfg.Server.MaxSessions, cfg.Server.SessionTTL),
		cache:    layout.NewCache(layout.DefaultCacheSize),
		log:      logger.Named("http"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "shelfd",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(s.accessLog)

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	s.app.Get("/layouts", s.listLayouts)
	s.app.Post("/layouts", s.createLayout)
	s.app.Get("/layouts/:id", s.getLayout)
	s.app.Put("/layouts/:id", s.updateLayout)
	s.app.Delete("/layouts/:id", s.deleteLayout)
	s.app.Get("/layouts/:id/groups", s.layoutGroups)
	s.app.Get("/layouts/:id/scene", s.layoutScene)
	s.app.Get("/layouts/:id/occupied", s.getOccupied)
	s.app.Put("/layouts/:id/occupied", s.putOccupied)
	s.app.Get("/layouts/:id/selections", s.listSelections)

	s.app.Post("/sessions", s.createSession)
	s.app.Get("/sessions/:id", s.getSession)
	s.app.Delete("/sessions/:id", s.deleteSession)
	s.app.Post("/sessions/:id/keys", s.sessionKey)
	s.app.Post("/sessions/:id/select", s.sessionSelect)
	s.app.Post("/sessions/:id/external", s.sessionExternal)
	s.app.Post("/sessions/:id/click", s.sessionClick)
	s.app.Post("/sessions/:id/floor", s.sessionFloor)
	s.app.Post("/sessions/:id/focus", s.sessionFocus)
	s.app.Post("/sessions/:id/frames", s.sessionFrames)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) accessLog(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	s.log.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

// handleError turns returned errors into JSON bodies. Store misses map to
// 404; everything unexpected is logged and reported as 500.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "internal error"

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, store.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	default:
		s.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func badRequest(msg string) error {
	return fiber.NewError(http.StatusBadRequest, msg)
}

func notFound(msg string) error {
	return fiber.NewError(http.StatusNotFound, msg)
}
