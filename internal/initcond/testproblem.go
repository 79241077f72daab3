// Package initcond populates particle ensembles with the initial state of
// one of the canonical flavor-transport test problems, and owns the
// count/scan/fill allocation protocol that sizes per-tile storage.
package initcond

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/par"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/sphere"
)

// ErrInvalidSimulationType indicates an unknown test-problem identifier.
var ErrInvalidSimulationType = errors.New("initcond: invalid simulation type")

// Env carries everything a test problem needs to fill one particle slot.
type Env struct {
	// Pos is the particle's physical position; U its sampled direction.
	Pos [3]float64
	U   sphere.Vec

	// ScaleFac converts a number density into a per-particle weight:
	// cell volume divided by (sub-locations per cell * directions).
	ScaleFac float64

	Geom       geom.Geometry
	NumFlavors int

	// RNG is seeded deterministically per cell, so randomized recipes are
	// reproducible and safe under the parallel fill pass.
	RNG *rand.Rand
}

// TestProblem is one initial-condition recipe. Init fills the momentum,
// weight and flavor-state fields of a freshly allocated particle.
type TestProblem interface {
	Name() string
	Init(p *particles.Particle, env *Env)
}

// preparer is implemented by problems that need one-time setup before the
// fill pass (root finding, shared tables).
type preparer interface {
	prepare(g geom.Geometry, comm par.Comm, rng *rand.Rand) error
}

// CaseParams bundles the per-test parameters for recipes that take any.
type CaseParams struct {
	KBeam    KBeamParams
	Random   RandomParams
	Minerbo  MinerboParams
	Fourier  FourierParams
	Gaussian GaussianParams
}

// FromID maps a legacy numeric simulation type to its test problem.
// Unknown identifiers are a configuration error.
func FromID(id int, p CaseParams) (TestProblem, error) {
	switch id {
	case 0:
		return &VacuumOscillation{}, nil
	case 1:
		return &BipolarOscillation{}, nil
	case 2:
		return &TwoBeamFastFlavor{}, nil
	case 3:
		return &KBeamFastFlavor{KBeamParams: p.KBeam}, nil
	case 4:
		return &RandomizedFastFlavor{RandomParams: p.Random}, nil
	case 5:
		return &MinerboDistribution{MinerboParams: p.Minerbo}, nil
	case 6:
		return &FourierComparison{FourierParams: p.Fourier}, nil
	case 7:
		return &GaussianComparison{GaussianParams: p.Gaussian}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSimulationType, id)
	}
}

func assertTwoFlavor(name string, n int) {
	if n != 2 {
		panic(fmt.Sprintf("initcond: %s requires exactly 2 flavors, got %d", name, n))
	}
}

func setMomentum(p *particles.Particle, u sphere.Vec, energy float64) {
	p.Pupt = energy
	p.Pupx = u[0] * energy
	p.Pupy = u[1] * energy
	p.Pupz = u[2] * energy
}
