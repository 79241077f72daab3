package initcond

import (
	"math"

	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/phys"
)

// TwoBeamFastFlavor sets up counter-propagating neutrino and antineutrino
// beams: a pure electron-flavor gas at 50 MeV whose weights are linearly
// modulated by the z direction cosine, N ~ (1+u_z) and Nbar ~ (1-u_z),
// normalized so the fast-flavor growth condition omega/2mu = 1 holds.
type TwoBeamFastFlavor struct{}

func (TwoBeamFastFlavor) Name() string { return "fast_flavor" }

func (TwoBeamFastFlavor) Init(p *particles.Particle, env *Env) {
	assertTwoFlavor("two-beam fast flavor", env.NumFlavors)

	p.F = flavor.NewPure(2, 0)
	p.Fbar = flavor.NewPure(2, 0)

	setMomentum(p, env.U, fiftyMeV)

	ndens := 1.0e6 * phys.DM2() * phys.C4 / (2.0 * math.Sqrt2 * phys.GF * p.Pupt)
	p.N = ndens * env.ScaleFac * (1.0 + env.U[2])
	p.Nbar = ndens * env.ScaleFac * (1.0 - env.U[2])
}

// KBeamParams configures the finite-wavenumber beam test: the seed
// perturbation wavelength as a fraction of the z domain extent, and its
// amplitude.
type KBeamParams struct {
	WavelengthFraction float64
	Amplitude          float64
}

// KBeamFastFlavor is the two-beam setup with a spatially sinusoidal seed
// on the flavor coherence. The number density ties the self-interaction
// scale to the perturbation wavenumber, ndens = k*hbar*c / (2*sqrt(2)*GF),
// so the seeded mode sits at the instability scale.
type KBeamFastFlavor struct {
	KBeamParams
}

func (*KBeamFastFlavor) Name() string { return "fast_flavor_k" }

func (t *KBeamFastFlavor) Init(p *particles.Particle, env *Env) {
	assertTwoFlavor("k!=0 fast flavor", env.NumFlavors)

	p.F = flavor.NewPure(2, 0)
	p.Fbar = flavor.NewPure(2, 0)

	setMomentum(p, env.U, fiftyMeV)

	lambda := t.WavelengthFraction * env.Geom.Length(2)
	k := 2.0 * math.Pi / lambda
	z := env.Pos[2] - env.Geom.ProbLo[2]

	seed := t.Amplitude * math.Sin(k*z)
	p.F.Re[0] = seed
	p.Fbar.Re[0] = seed

	ndens := k * phys.Hbarc / (2.0 * math.Sqrt2 * phys.GF)
	p.N = ndens * env.ScaleFac * (1.0 + env.U[2])
	p.Nbar = ndens * env.ScaleFac * (1.0 - env.U[2])
}
