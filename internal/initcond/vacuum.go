package initcond

import (
	"math"

	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/phys"
)

// VacuumOscillation starts every particle in a pure electron state with
// unit weights and a momentum chosen so one vacuum oscillation wavelength
// spans exactly 1 cm. Two-flavor only; self-interaction is negligible by
// construction.
type VacuumOscillation struct{}

func (VacuumOscillation) Name() string { return "vacuum" }

func (VacuumOscillation) Init(p *particles.Particle, env *Env) {
	assertTwoFlavor("vacuum oscillation", env.NumFlavors)

	p.F = flavor.NewPure(2, 0)
	p.Fbar = flavor.NewPure(2, 0)
	p.N = 1.0
	p.Nbar = 1.0

	// One oscillation wavelength per 1 cm.
	energy := phys.DM2() * phys.C4 * math.Sin(2.0*phys.Theta12) / (8.0 * math.Pi * phys.Hbarc)
	setMomentum(p, env.U, energy)
}
