// Beltwatch - belt open/close tracking with camera movement
// classification, exposed over HTTP and websocket feeds.
//
// Environment:
//
//	BELT_PORT      HTTP port (default 8089)
//	BELT_CONFIG    path to a TOML settings file
//	BELT_PRESET    settings preset name (default, frequent, low-light, ...)
//	BELT_AUTOSTART set to 1 to start capturing at boot
//	CAMERA_DEVICE  capture device index (default 0)
//	LOG_LEVEL      debug, info, warn or error
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/john-holland/matic-belt/internal/config"
	"github.com/john-holland/matic-belt/internal/log"
	"github.com/john-holland/matic-belt/pkg/belt"
	"github.com/john-holland/matic-belt/pkg/camera"
	"github.com/john-holland/matic-belt/pkg/capture"
	"github.com/john-holland/matic-belt/pkg/web"
)

func main() {
	godotenv.Load() // .env is optional
	log.Init(config.LogLevel())

	settings, err := config.LoadSettings()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	source := camera.NewWebcam(config.DeviceID())
	store := capture.NewDiskStore(settings.SaveDirectory)
	session, err := capture.NewSession(settings, source, store)
	if err != nil {
		log.Error("failed to create capture session", "error", err)
		os.Exit(1)
	}

	tracker := belt.NewTracker()
	server := web.NewServer(config.Port(), session, tracker)

	if os.Getenv("BELT_AUTOSTART") == "1" {
		if err := session.Start(); err != nil {
			log.Warn("autostart failed, camera can still be started via the API", "error", err)
		}
	}

	server.StartAsync()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	session.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
