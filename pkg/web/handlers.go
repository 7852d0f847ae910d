package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/john-holland/matic-belt/pkg/capture"
	"github.com/john-holland/matic-belt/pkg/hub"
)

// handleHealth reports liveness and feed subscriber counts.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"subscribers": fiber.Map{
			"movements": s.movementHub.ClientCount(),
			"belt":      s.beltHub.ClientCount(),
		},
	})
}

// handleCameraStart opens the camera and begins timer-driven capture.
func (s *Server) handleCameraStart(c *fiber.Ctx) error {
	if err := s.session.Start(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":   "success",
		"message":  "Camera started successfully",
		"settings": s.session.Settings(),
	})
}

// handleCameraStop stops capture and releases the camera.
func (s *Server) handleCameraStop(c *fiber.Ctx) error {
	s.session.Stop()
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Camera stopped successfully",
	})
}

// handleCapture runs one manual capture tick.
func (s *Server) handleCapture(c *fiber.Ctx) error {
	rec := s.session.Capture(capture.TriggerManual)
	if rec.Status == capture.StatusError {
		return c.Status(fiber.StatusServiceUnavailable).JSON(rec)
	}
	return c.JSON(rec)
}

// handleCameraStats returns the session snapshot.
func (s *Server) handleCameraStats(c *fiber.Ctx) error {
	return c.JSON(s.session.Snapshot())
}

// handleBeltOpen records a belt open and broadcasts the event.
func (s *Server) handleBeltOpen(c *fiber.Ctx) error {
	ev := s.belt.Open()
	s.beltHub.BroadcastJSON(ev)
	return c.JSON(ev)
}

// handleBeltClose records a belt close. Closing a belt that was not
// open is rejected with a structured error, never a crash.
func (s *Server) handleBeltClose(c *fiber.Ctx) error {
	ev, err := s.belt.Close()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(ev)
	}
	s.beltHub.BroadcastJSON(ev)
	return c.JSON(ev)
}

// handleBeltStats returns the tracker statistics.
func (s *Server) handleBeltStats(c *fiber.Ctx) error {
	return c.JSON(s.belt.Stats())
}

// handleMovementsWS subscribes a websocket client to capture records.
func (s *Server) handleMovementsWS(conn *websocket.Conn) {
	hub.NewClient(s.movementHub, conn).Run()
}

// handleBeltWS subscribes a websocket client to belt events.
func (s *Server) handleBeltWS(conn *websocket.Conn) {
	hub.NewClient(s.beltHub, conn).Run()
}
