package lyapunov_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/lyapunov"
	"github.com/sgarrel/nuflav/internal/particles"
)

// testEnsemble builds a single-tile container of n particles in a mixed
// two-flavor state, with distinct ids, positions and momenta.
func testEnsemble(n int) *particles.Container {
	box := geom.Box{Lo: [3]int{0, 0, 0}, Hi: [3]int{n - 1, 0, 0}}
	c := particles.NewContainer([]geom.Box{box})
	tile := c.Tile(0)
	tile.Resize(n)
	parts := tile.Particles()
	for i := range parts {
		p := &parts[i]
		p.ID = int64(i + 1)
		p.Owner = 0
		p.Pos = [3]float64{float64(i) + 0.5, 0.5, 0.5}
		p.IntPos = p.Pos
		p.Pupt = 1.0
		p.Pupz = 1.0
		p.F = flavor.New(2)
		p.F.Diag[0] = 0.7
		p.F.Diag[1] = 0.3
		p.Fbar = flavor.New(2)
		p.Fbar.Diag[0] = 0.6
		p.Fbar.Diag[1] = 0.4
		p.N = 1.0
		p.Nbar = 1.0
	}
	return c
}

var _ = Describe("Perturb", func() {
	It("changes every coherence and keeps traces near one", func() {
		cur := testEnsemble(16)
		ref := cur.Clone()
		rng := rand.New(rand.NewSource(1))

		lyapunov.Perturb(cur, 1e-4, rng)

		cur.ForEach(func(p *particles.Particle) {
			Expect(p.F.Re[0]).NotTo(BeZero())
			Expect(p.F.Im[0]).NotTo(BeZero())
			Expect(p.F.Trace()).To(BeNumerically("~", 1.0, 1e-3))
			Expect(p.Fbar.Trace()).To(BeNumerically("~", 1.0, 1e-3))
		})

		d, rep := lyapunov.Distance(cur, ref, lyapunov.MatchByIdentity)
		Expect(rep.OK()).To(BeTrue())
		Expect(d).To(BeNumerically(">", 0))
	})

	It("is reproducible for a fixed seed", func() {
		a := testEnsemble(8)
		b := testEnsemble(8)

		lyapunov.Perturb(a, 1e-4, rand.New(rand.NewSource(7)))
		lyapunov.Perturb(b, 1e-4, rand.New(rand.NewSource(7)))

		d, rep := lyapunov.Distance(a, b, lyapunov.MatchByIdentity)
		Expect(rep.OK()).To(BeTrue())
		Expect(d).To(BeZero())
	})
})

var _ = Describe("Distance", func() {
	It("is zero between an ensemble and its clone", func() {
		cur := testEnsemble(8)
		ref := cur.Clone()

		for _, mode := range []lyapunov.MatchMode{lyapunov.MatchByFields, lyapunov.MatchByIdentity} {
			d, rep := lyapunov.Distance(cur, ref, mode)
			Expect(d).To(BeZero())
			Expect(rep.OK()).To(BeTrue())
		}
	})

	It("sums squared component differences across particles", func() {
		cur := testEnsemble(4)
		ref := cur.Clone()

		// One component off by 3e-5 on two particles: L2 = 3e-5*sqrt(2).
		parts := cur.Tile(0).Particles()
		parts[0].F.Re[0] += 3e-5
		parts[2].Fbar.Im[0] -= 3e-5

		d, rep := lyapunov.Distance(cur, ref, lyapunov.MatchByIdentity)
		Expect(rep.OK()).To(BeTrue())
		Expect(d).To(BeNumerically("~", 3e-5*math.Sqrt2, 1e-18))
	})

	It("reports and skips particles with no reference match", func() {
		cur := testEnsemble(4)
		ref := testEnsemble(3)

		d, rep := lyapunov.Distance(cur, ref, lyapunov.MatchByIdentity)
		Expect(rep.Unmatched).To(Equal(1))
		Expect(rep.OK()).To(BeFalse())
		Expect(rep.Messages).To(HaveLen(1))
		Expect(d).To(BeZero())
	})
})

var _ = Describe("particle matching", func() {
	It("loses pairs by fields once tracking fields drift", func() {
		cur := testEnsemble(4)
		ref := cur.Clone()
		cur.Tile(0).Particles()[1].Time = 1e-9

		_, rep := lyapunov.Distance(cur, ref, lyapunov.MatchByFields)
		Expect(rep.Unmatched).To(Equal(1))
	})

	It("keeps pairs by identity regardless of drift", func() {
		cur := testEnsemble(4)
		ref := cur.Clone()
		cur.Tile(0).Particles()[1].Time = 1e-9
		cur.Tile(0).Particles()[2].Pos[0] += 0.25

		_, rep := lyapunov.Distance(cur, ref, lyapunov.MatchByIdentity)
		Expect(rep.Unmatched).To(BeZero())
	})
})

var _ = Describe("Renormalize", func() {
	cfg := lyapunov.Config{Amplitude: 1e-6, Match: lyapunov.MatchByIdentity}

	It("rescales the ensemble distance back to the target amplitude", func() {
		cur := testEnsemble(16)
		ref := cur.Clone()
		lyapunov.Perturb(cur, 1e-4, rand.New(rand.NewSource(3)))

		d0, _ := lyapunov.Distance(cur, ref, cfg.Match)
		rep, err := lyapunov.Renormalize(cur, ref, d0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.TraceViolations).To(BeZero())

		d1, _ := lyapunov.Distance(cur, ref, cfg.Match)
		Expect(d1).To(BeNumerically("~", cfg.Amplitude, 1e-12))
	})

	It("refuses a zero magnitude and leaves the ensemble untouched", func() {
		cur := testEnsemble(4)
		ref := cur.Clone()

		rep, err := lyapunov.Renormalize(cur, ref, 0, cfg)
		Expect(err).To(MatchError(lyapunov.ErrZeroMagnitude))
		Expect(rep.Messages).NotTo(BeEmpty())

		d, _ := lyapunov.Distance(cur, ref, cfg.Match)
		Expect(d).To(BeZero())
	})

	It("flags occupation sums blown outside [0.99, 1.01]", func() {
		cur := testEnsemble(2)
		ref := cur.Clone()

		// A tiny measured magnitude against a large target amplifies the
		// deviation instead of shrinking it.
		cur.Tile(0).Particles()[0].F.Diag[0] += 1e-3
		d, _ := lyapunov.Distance(cur, ref, cfg.Match)
		big := lyapunov.Config{Amplitude: 100 * d, Match: cfg.Match}

		rep, err := lyapunov.Renormalize(cur, ref, d, big)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.TraceViolations).To(BeNumerically(">", 0))
		Expect(rep.OK()).To(BeFalse())
	})
})
