package initcond

import (
	"errors"
	"math"
	"math/rand"

	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/par"
	"github.com/sgarrel/nuflav/internal/particles"
)

// ErrNotOneDimensional indicates a code-comparison setup was configured on
// a grid with more than one cell along x or y.
var ErrNotOneDimensional = errors.New("initcond: code-comparison setup requires a single x,y cell")

// FourierParams configures the code-comparison superposition test:
// coherence amplitude and the number of discrete spatial Fourier modes.
type FourierParams struct {
	Amplitude float64
	NumModes  int
}

// FourierComparison is a one-dimensional setup whose flavor coherence is a
// superposition of discrete z Fourier modes with random phases. The phase
// table is drawn once by the root rank and broadcast, so every rank fills
// particles with identical mode phases. Antineutrino coherence is the
// complex conjugate of the neutrino coherence.
type FourierComparison struct {
	FourierParams

	// Frozen after prepare; read-only during the fill pass.
	phases []float64
}

func (*FourierComparison) Name() string { return "fourier_comparison" }

func (t *FourierComparison) prepare(g geom.Geometry, comm par.Comm, rng *rand.Rand) error {
	if g.Cells[0] != 1 || g.Cells[1] != 1 {
		return ErrNotOneDimensional
	}
	t.phases = make([]float64, t.NumModes)
	if comm.Rank() == 0 {
		for m := range t.phases {
			t.phases[m] = 2.0 * math.Pi * rng.Float64()
		}
	}
	comm.Broadcast(0, t.phases)
	return nil
}

func (t *FourierComparison) Init(p *particles.Particle, env *Env) {
	n := env.NumFlavors
	p.F = flavor.NewPure(n, 0)
	p.Fbar = flavor.NewPure(n, 0)

	setMomentum(p, env.U, fiftyMeV)
	p.N = env.ScaleFac
	p.Nbar = env.ScaleFac

	length := env.Geom.Length(2)
	z := env.Pos[2] - env.Geom.ProbLo[2]

	re, im := 0.0, 0.0
	for m, phase := range t.phases {
		k := 2.0 * math.Pi * float64(m+1) / length
		re += math.Cos(k*z + phase)
		im += math.Sin(k*z + phase)
	}
	scale := t.Amplitude / float64(len(t.phases))
	p.F.Re[0] = scale * re
	p.F.Im[0] = scale * im
	p.Fbar.Re[0] = scale * re
	p.Fbar.Im[0] = -scale * im
}

// GaussianParams configures the localized-bump comparison test. Center and
// Width are fractions of the z domain extent.
type GaussianParams struct {
	Amplitude float64
	Center    float64
	Width     float64
}

// GaussianComparison is a one-dimensional setup whose flavor coherence is
// a single Gaussian bump in z, with the antineutrino coherence set to the
// complex conjugate (identical here, the bump is purely real).
type GaussianComparison struct {
	GaussianParams
}

func (*GaussianComparison) Name() string { return "gaussian_comparison" }

func (t *GaussianComparison) prepare(g geom.Geometry, comm par.Comm, rng *rand.Rand) error {
	if g.Cells[0] != 1 || g.Cells[1] != 1 {
		return ErrNotOneDimensional
	}
	return nil
}

func (t *GaussianComparison) Init(p *particles.Particle, env *Env) {
	n := env.NumFlavors
	p.F = flavor.NewPure(n, 0)
	p.Fbar = flavor.NewPure(n, 0)

	setMomentum(p, env.U, fiftyMeV)
	p.N = env.ScaleFac
	p.Nbar = env.ScaleFac

	length := env.Geom.Length(2)
	z := env.Pos[2] - env.Geom.ProbLo[2]
	z0 := t.Center * length
	sigma := t.Width * length

	bump := t.Amplitude * math.Exp(-(z-z0)*(z-z0)/(2.0*sigma*sigma))
	p.F.Re[0] = bump
	p.Fbar.Re[0] = bump
}
