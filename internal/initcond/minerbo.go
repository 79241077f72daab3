package initcond

import (
	"math/rand"

	"github.com/sgarrel/nuflav/internal/closure"
	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/par"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/sphere"
)

// MinerboParams configures the closure-distribution test per flavor
// species: electron neutrinos, electron antineutrinos, and the heavy "x"
// species shared between sectors. Flux factors live in [0,1).
type MinerboParams struct {
	NDensE float64
	NDensA float64
	NDensX float64

	FluxFacE float64
	FluxFacA float64
	FluxFacX float64

	FluxDirE sphere.Vec
	FluxDirA sphere.Vec
	FluxDirX sphere.Vec

	Amplitude float64
}

// MinerboDistribution draws each species' angular distribution from the
// Minerbo closure fit to its flux factor. Per-particle species populations
// become the diagonal flavor state; coherences are seeded with small
// symmetric-random perturbations proportional to the diagonal gaps.
type MinerboDistribution struct {
	MinerboParams

	// Shape parameters solved once per initialization call.
	zE, zA, zX float64
}

func (*MinerboDistribution) Name() string { return "minerbo" }

func (t *MinerboDistribution) prepare(g geom.Geometry, comm par.Comm, rng *rand.Rand) error {
	var err error
	if t.zE, err = closure.SolveZ(t.FluxFacE); err != nil {
		return err
	}
	if t.zA, err = closure.SolveZ(t.FluxFacA); err != nil {
		return err
	}
	t.zX, err = closure.SolveZ(t.FluxFacX)
	return err
}

func (t *MinerboDistribution) Init(p *particles.Particle, env *Env) {
	n := env.NumFlavors

	setMomentum(p, env.U, fiftyMeV)

	// Per-particle species populations from the closure's angular weight.
	nE := t.NDensE * closure.AngularWeight(t.zE, env.U.Dot(t.FluxDirE))
	nA := t.NDensA * closure.AngularWeight(t.zA, env.U.Dot(t.FluxDirA))
	// The heavy-lepton density is split evenly between sectors.
	nX := 0.5 * t.NDensX * closure.AngularWeight(t.zX, env.U.Dot(t.FluxDirX))
	perHeavy := nX / float64(n-1)

	p.F = flavor.New(n)
	p.Fbar = flavor.New(n)

	p.N = nE + nX
	p.Nbar = nA + nX
	p.F.Diag[0] = nE / p.N
	p.Fbar.Diag[0] = nA / p.Nbar
	for i := 1; i < n; i++ {
		p.F.Diag[i] = perHeavy / p.N
		p.Fbar.Diag[i] = perHeavy / p.Nbar
	}

	p.N *= env.ScaleFac
	p.Nbar *= env.ScaleFac

	// Seed coherences in proportion to the occupation gap of each pair so
	// fully mixed pairs stay coherence-free.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			idx := flavor.PairIndex(n, i, j)
			gap := 0.5 * (p.F.Diag[i] - p.F.Diag[j])
			p.F.Re[idx] = t.Amplitude * flavor.SymRand(env.RNG) * gap
			p.F.Im[idx] = t.Amplitude * flavor.SymRand(env.RNG) * gap
			gapBar := 0.5 * (p.Fbar.Diag[i] - p.Fbar.Diag[j])
			p.Fbar.Re[idx] = t.Amplitude * flavor.SymRand(env.RNG) * gapBar
			p.Fbar.Im[idx] = t.Amplitude * flavor.SymRand(env.RNG) * gapBar
		}
	}
}
