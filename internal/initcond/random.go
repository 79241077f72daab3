package initcond

import (
	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/sphere"
)

// RandomParams configures the randomized finite-wavenumber test: target
// number densities and flux states for each sector, plus the coherence
// perturbation amplitude.
type RandomParams struct {
	NDens      float64
	NDensBar   float64
	FluxFac    float64
	FluxFacBar float64
	FluxDir    sphere.Vec
	FluxDirBar sphere.Vec
	Amplitude  float64
}

// RandomizedFastFlavor seeds every flavor coherence with an independent
// symmetric-uniform perturbation and modulates particle weights by the
// cosine angle between the direction and a configured flux direction,
// independently for the neutrino and antineutrino sectors.
type RandomizedFastFlavor struct {
	RandomParams
}

func (*RandomizedFastFlavor) Name() string { return "fast_flavor_random" }

func (t *RandomizedFastFlavor) Init(p *particles.Particle, env *Env) {
	n := env.NumFlavors
	p.F = flavor.NewPure(n, 0)
	p.Fbar = flavor.NewPure(n, 0)

	for idx := range p.F.Re {
		p.F.Re[idx] = t.Amplitude * flavor.SymRand(env.RNG)
		p.F.Im[idx] = t.Amplitude * flavor.SymRand(env.RNG)
		p.Fbar.Re[idx] = t.Amplitude * flavor.SymRand(env.RNG)
		p.Fbar.Im[idx] = t.Amplitude * flavor.SymRand(env.RNG)
	}

	setMomentum(p, env.U, fiftyMeV)

	// Linear closure: the angular distribution of a gas with flux factor f
	// along fhat is 1 + 3*f*(u.fhat) to first moment.
	p.N = t.NDens * env.ScaleFac * (1.0 + 3.0*t.FluxFac*env.U.Dot(t.FluxDir))
	p.Nbar = t.NDensBar * env.ScaleFac * (1.0 + 3.0*t.FluxFacBar*env.U.Dot(t.FluxDirBar))
}
