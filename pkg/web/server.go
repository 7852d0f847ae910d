// Package web exposes the belt monitor over HTTP: camera lifecycle and
// capture endpoints, belt tracking endpoints, and websocket feeds of
// movement samples and belt events.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/john-holland/matic-belt/internal/log"
	"github.com/john-holland/matic-belt/pkg/belt"
	"github.com/john-holland/matic-belt/pkg/capture"
	"github.com/john-holland/matic-belt/pkg/hub"
)

// Server is the HTTP/websocket front end for one capture session and
// one belt tracker.
type Server struct {
	app  *fiber.App
	port string

	session *capture.Session
	belt    *belt.Tracker

	// Hubs for websocket broadcast
	movementHub *hub.Hub
	beltHub     *hub.Hub
}

// NewServer wires the API around a session and tracker. Every capture
// record the session produces is broadcast on the movements feed.
func NewServer(port string, session *capture.Session, tracker *belt.Tracker) *Server {
	s := &Server{
		port:        port,
		session:     session,
		belt:        tracker,
		movementHub: hub.New("movements"),
		beltHub:     hub.New("belt"),
	}

	session.OnRecord = func(rec capture.Record) {
		s.movementHub.BroadcastJSON(rec)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Belt Monitor",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/camera/start", s.handleCameraStart)
	api.Post("/camera/stop", s.handleCameraStop)
	api.Post("/camera/capture", s.handleCapture)
	api.Get("/camera/stats", s.handleCameraStats)
	api.Post("/belt/open", s.handleBeltOpen)
	api.Post("/belt/close", s.handleBeltClose)
	api.Get("/belt/stats", s.handleBeltStats)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/movements", websocket.New(s.handleMovementsWS))
	app.Get("/ws/belt", websocket.New(s.handleBeltWS))

	s.app = app
	return s
}

// Start starts the hubs and the HTTP server. Blocks.
func (s *Server) Start() error {
	go s.movementHub.Run()
	go s.beltHub.Run()

	log.Info("belt monitor listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
