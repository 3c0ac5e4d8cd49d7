package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quench-lab/superfluid/internal/gpe"
)

const (
	DefaultGridSize       = 32
	DefaultSpacing        = 1.0
	DefaultHealingLength  = 10.0
	DefaultTrapRadius     = 10.0
	DefaultFingerStrength = 0.5
	DefaultCoolingSteps   = 100
	DefaultDtScale        = 0.1
	DefaultWinding        = 10
	DefaultTracerCount    = 1000
	DefaultSeed           = 1
	DefaultAddr           = ":8770"
	DefaultTickRateHz     = 20.0
	DefaultStepsPerTick   = 4
)

type Config struct {
	Nx             int         `yaml:"nx"`
	Ny             int         `yaml:"ny"`
	Dx             float64     `yaml:"dx"`
	HealingLength  float64     `yaml:"healing_length"`
	TrapRadius     float64     `yaml:"trap_radius"`
	FingerStrength float64     `yaml:"finger_strength"`
	CoolingPhase   PhaseConfig `yaml:"cooling_phase"`
	CoolingSteps   int         `yaml:"cooling_steps"`
	DtScale        float64     `yaml:"dt_scale"`
	SOC            bool        `yaml:"soc"`
	SOCDetuning    float64     `yaml:"soc_detuning"`
	SOCCoupling    float64     `yaml:"soc_coupling"`
	Winding        int         `yaml:"winding"`
	Cylinder       bool        `yaml:"cylinder"`
	TestFinger     bool        `yaml:"test_finger"`
	TracerCount    int         `yaml:"tracer_count"`
	Seed           int64       `yaml:"seed"`

	Server ServerConfig `yaml:"server"`
}

// PhaseConfig is the complex cooling-phase coefficient split into parts
// so it stays readable in YAML.
type PhaseConfig struct {
	Real float64 `yaml:"real"`
	Imag float64 `yaml:"imag"`
}

type ServerConfig struct {
	Addr         string  `yaml:"addr"`
	TickRateHz   float64 `yaml:"tick_rate_hz"`
	StepsPerTick int     `yaml:"steps_per_tick"`
}

func DefaultConfig() *Config {
	return &Config{
		Nx: DefaultGridSize, Ny: DefaultGridSize, Dx: DefaultSpacing,
		HealingLength:  DefaultHealingLength,
		TrapRadius:     DefaultTrapRadius,
		FingerStrength: DefaultFingerStrength,
		CoolingPhase:   PhaseConfig{Real: 1.0, Imag: 0.01},
		CoolingSteps:   DefaultCoolingSteps,
		DtScale:        DefaultDtScale,
		SOCDetuning:    0.05,
		SOCCoupling:    0.5,
		Winding:        DefaultWinding,
		Cylinder:       true,
		TracerCount:    DefaultTracerCount,
		Seed:           DefaultSeed,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			TickRateHz:   DefaultTickRateHz,
			StepsPerTick: DefaultStepsPerTick,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the file representation into engine parameters.
func (c *Config) Params() gpe.Params {
	return gpe.Params{
		Nx: c.Nx, Ny: c.Ny, Dx: c.Dx,
		HealingLength:  c.HealingLength,
		TrapRadius:     c.TrapRadius,
		FingerStrength: c.FingerStrength,
		CoolingPhase:   complex(c.CoolingPhase.Real, c.CoolingPhase.Imag),
		CoolingSteps:   c.CoolingSteps,
		DtScale:        c.DtScale,
		SOC:            c.SOC,
		SOCDetuning:    c.SOCDetuning,
		SOCCoupling:    c.SOCCoupling,
		Winding:        c.Winding,
		Cylinder:       c.Cylinder,
		TestFinger:     c.TestFinger,
		TracerCount:    c.TracerCount,
		Seed:           c.Seed,
	}
}
