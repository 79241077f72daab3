package initcond

import (
	"math"

	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/phys"
)

// fiftyMeV is the reference neutrino energy of Richers+(2019) in erg.
const fiftyMeV = 50.0 * 1e6 * phys.EV

// BipolarOscillation starts a pure electron-flavor gas at 50 MeV with the
// number density 10*dm2*c^4 / (2*sqrt(2)*GF*E), deep in the bipolar
// oscillation regime.
type BipolarOscillation struct{}

func (BipolarOscillation) Name() string { return "bipolar" }

func (BipolarOscillation) Init(p *particles.Particle, env *Env) {
	assertTwoFlavor("bipolar oscillation", env.NumFlavors)

	p.F = flavor.NewPure(2, 0)
	p.Fbar = flavor.NewPure(2, 0)

	setMomentum(p, env.U, fiftyMeV)

	ndens := 10.0 * phys.DM2() * phys.C4 / (2.0 * math.Sqrt2 * phys.GF * p.Pupt)
	p.N = ndens * env.ScaleFac
	p.Nbar = ndens * env.ScaleFac
}
