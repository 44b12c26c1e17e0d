package config

import "sort"

var Presets = map[string]*Config{
	"pebble": {
		Width: 144, Height: 168, Count: 50, MaxRadius: 10, Restitution: 0.97,
		Numeric: "float", Ticks: 1200, Driver: DriverCycle,
		Gravity: GravityConfig{Frames: 120, Magnitude: 0.2},
	},
	"dense": {
		Width: 144, Height: 168, Count: 200, MaxRadius: 10, RefCount: 50, Restitution: 0.9,
		Numeric: "float", Ticks: 1200, Driver: DriverCycle,
		Gravity: GravityConfig{Frames: 120, Magnitude: 0.2},
	},
	"lossless": {
		Width: 200, Height: 200, Count: 30, MaxRadius: 8, Restitution: 1, InitialSpeed: 2,
		Numeric: "float", Ticks: 2000, Driver: DriverConstant,
	},
	"fixed": {
		Width: 144, Height: 168, Count: 50, MaxRadius: 10, Restitution: 0.97,
		Numeric: "q20", Ticks: 1200, Driver: DriverCycle,
		Gravity: GravityConfig{Frames: 120, Magnitude: 0.2},
	},
	"windy": {
		Width: 240, Height: 120, Count: 60, MaxRadius: 6, Restitution: 0.95,
		Numeric: "float", Ticks: 1500, Driver: DriverConstant,
		Wind: WindConfig{X: 0.15, Y: 0.1},
	},
}

// GetPreset returns a copy of the named preset with unset driver settings
// filled from the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	def := DefaultConfig()
	if cfg.Gravity.Frames == 0 {
		cfg.Gravity = def.Gravity
	}
	if cfg.Tilt.Scale == 0 {
		cfg.Tilt = def.Tilt
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
