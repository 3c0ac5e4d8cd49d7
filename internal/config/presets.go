package config

// Presets are named starting points for common demonstration setups.
var Presets = map[string]func() *Config{
	"cylinder": func() *Config {
		// The default: cylindrical trap with a persistent current.
		return DefaultConfig()
	},
	"uniform": func() *Config {
		cfg := DefaultConfig()
		cfg.Cylinder = false
		cfg.Winding = 0
		return cfg
	},
	"soc": func() *Config {
		cfg := DefaultConfig()
		cfg.SOC = true
		cfg.Cylinder = false
		cfg.Winding = 0
		return cfg
	},
	"test-finger": func() *Config {
		cfg := DefaultConfig()
		cfg.TestFinger = true
		return cfg
	},
	"small": func() *Config {
		// Quick-start grid for smoke runs on slow machines.
		cfg := DefaultConfig()
		cfg.Nx, cfg.Ny = 16, 16
		cfg.TracerCount = 100
		return cfg
	},
}

// GetPreset returns a fresh config for the named preset, or nil when the
// name is unknown.
func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
