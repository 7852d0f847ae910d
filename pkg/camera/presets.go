package camera

// Preset names for common configurations
const (
	PresetDefault      = "default"
	PresetFrequent     = "frequent"
	PresetLowLight     = "low-light"
	PresetSensitive    = "sensitive"
	PresetConservative = "conservative"
)

// Presets returns all available preset configurations.
func Presets() map[string]Settings {
	return map[string]Settings{
		PresetDefault:      DefaultSettings(),
		PresetFrequent:     FrequentSettings(),
		PresetLowLight:     LowLightSettings(),
		PresetSensitive:    SensitiveSettings(),
		PresetConservative: ConservativeSettings(),
	}
}

// PresetNames returns the list of available preset names.
func PresetNames() []string {
	return []string{
		PresetDefault,
		PresetFrequent,
		PresetLowLight,
		PresetSensitive,
		PresetConservative,
	}
}

// GetPreset returns a preset by name, or nil if not found.
func GetPreset(name string) *Settings {
	presets := Presets()
	if s, ok := presets[name]; ok {
		return &s
	}
	return nil
}

// FrequentSettings captures every ten seconds instead of every minute.
// Useful while tuning thresholds against a live scene.
func FrequentSettings() Settings {
	s := DefaultSettings()
	s.TimerInterval = 10.0
	return s
}

// LowLightSettings raises all thresholds to compensate for sensor noise
// in dim scenes, which inflates the frame difference.
func LowLightSettings() Settings {
	s := DefaultSettings()
	s.MovementThreshold = 40.0
	s.RunningThreshold = 55.0
	s.FallThreshold = 70.0
	return s
}

// SensitiveSettings lowers all thresholds for well-lit, static scenes
// where even small differences are meaningful.
func SensitiveSettings() Settings {
	s := DefaultSettings()
	s.MovementThreshold = 15.0
	s.RunningThreshold = 25.0
	s.FallThreshold = 35.0
	return s
}

// ConservativeSettings raises only the fall threshold, trading fall
// sensitivity for fewer false alarms.
func ConservativeSettings() Settings {
	s := DefaultSettings()
	s.FallThreshold = 65.0
	return s
}
