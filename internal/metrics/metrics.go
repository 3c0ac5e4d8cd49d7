package metrics

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/quench-lab/superfluid/internal/gpe"
)

// Metric observes engine snapshots between step batches and reduces them
// to a single reported value.
type Metric interface {
	Name() string
	Observe(s *gpe.State)
	Value() float64
	Reset()
}

// ParticleDrift tracks the worst relative deviation of the total density
// from the conserved particle number. Renormalization should keep this at
// floating-point noise.
type ParticleDrift struct {
	maxDrift float64
}

func NewParticleDrift() *ParticleDrift { return &ParticleDrift{} }

func (*ParticleDrift) Name() string { return "particle_drift" }

func (m *ParticleDrift) Observe(s *gpe.State) {
	drift := math.Abs(s.Norm()/s.ParticleNumber() - 1)
	if drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *ParticleDrift) Value() float64 { return m.maxDrift }
func (m *ParticleDrift) Reset()         { m.maxDrift = 0 }

// FingerSpeed tracks the fastest finger velocity seen, which the engine
// clamps to the local sound speed.
type FingerSpeed struct {
	maxSpeed float64
}

func NewFingerSpeed() *FingerSpeed { return &FingerSpeed{} }

func (*FingerSpeed) Name() string { return "finger_speed_max" }

func (m *FingerSpeed) Observe(s *gpe.State) {
	if speed := cmplx.Abs(s.FingerVelocity()); speed > m.maxSpeed {
		m.maxSpeed = speed
	}
}

func (m *FingerSpeed) Value() float64 { return m.maxSpeed }
func (m *FingerSpeed) Reset()         { m.maxSpeed = 0 }

// DensityContrast tracks the peak-to-mean density contrast, a rough
// measure of how excited the condensate is.
type DensityContrast struct {
	maxContrast float64
}

func NewDensityContrast() *DensityContrast { return &DensityContrast{} }

func (*DensityContrast) Name() string { return "density_contrast" }

func (m *DensityContrast) Observe(s *gpe.State) {
	n := s.Density()
	peak, total, cells := 0.0, 0.0, 0
	for _, row := range n {
		peak = math.Max(peak, floats.Max(row))
		total += floats.Sum(row)
		cells += len(row)
	}
	mean := total / float64(cells)
	if mean == 0 {
		return
	}
	if c := peak/mean - 1; c > m.maxContrast {
		m.maxContrast = c
	}
}

func (m *DensityContrast) Value() float64 { return m.maxContrast }
func (m *DensityContrast) Reset()         { m.maxContrast = 0 }
