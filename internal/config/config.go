// Package config provides configuration helpers for matic-belt commands.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/john-holland/matic-belt/pkg/camera"
)

// Defaults for the service.
const (
	DefaultPort     = "8089"
	DefaultDeviceID = 0
)

// Port returns the HTTP port from the BELT_PORT env var.
// Falls back to the default if not set.
func Port() string {
	if port := os.Getenv("BELT_PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// LogLevel returns the log level from the LOG_LEVEL env var.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// DeviceID returns the camera device index from CAMERA_DEVICE.
func DeviceID() int {
	if dev := os.Getenv("CAMERA_DEVICE"); dev != "" {
		if id, err := strconv.Atoi(dev); err == nil && id >= 0 {
			return id
		}
		fmt.Fprintf(os.Stderr, "Warning: ignoring invalid CAMERA_DEVICE=%q\n", dev)
	}
	return DefaultDeviceID
}

// LoadSettings resolves camera settings in order of precedence:
// a TOML file named by BELT_CONFIG, then a preset named by BELT_PRESET,
// then the built-in defaults.
func LoadSettings() (camera.Settings, error) {
	if path := os.Getenv("BELT_CONFIG"); path != "" {
		return SettingsFromFile(path)
	}
	if name := os.Getenv("BELT_PRESET"); name != "" {
		preset := camera.GetPreset(name)
		if preset == nil {
			return camera.Settings{}, fmt.Errorf("config: unknown preset %q (valid: %v)", name, camera.PresetNames())
		}
		return *preset, nil
	}
	return camera.DefaultSettings(), nil
}

// SettingsFromFile loads camera settings from a TOML file. Fields left
// out of the file keep their default values.
func SettingsFromFile(path string) (camera.Settings, error) {
	settings := camera.DefaultSettings()
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return camera.Settings{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if errs := settings.Validate(); len(errs) > 0 {
		return camera.Settings{}, fmt.Errorf("config: invalid settings in %s: %v", path, errs)
	}
	return settings, nil
}
