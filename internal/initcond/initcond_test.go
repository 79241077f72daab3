package initcond

import (
	"errors"
	"math"
	"testing"

	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/par"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/phys"
	"github.com/sgarrel/nuflav/internal/sphere"
)

func unitGeometry(cells [3]int) geom.Geometry {
	return geom.Geometry{
		Cells:  cells,
		ProbLo: [3]float64{0, 0, 0},
		ProbHi: [3]float64{1, 1, 1},
	}
}

func initialize(t *testing.T, g geom.Geometry, prob TestProblem, opt Options) (*particles.Container, *Summary) {
	t.Helper()
	c := particles.NewContainer([]geom.Box{g.Domain()})
	sum, err := InitParticles(c, g, prob, opt, particles.NewIDAllocator(), par.Local{})
	if err != nil {
		t.Fatalf("InitParticles: %v", err)
	}
	return c, sum
}

func TestFromIDInvalid(t *testing.T) {
	_, err := FromID(99, CaseParams{})
	if !errors.Is(err, ErrInvalidSimulationType) {
		t.Fatalf("err = %v, want ErrInvalidSimulationType", err)
	}
}

func TestFromIDKnownCases(t *testing.T) {
	for id := 0; id <= 7; id++ {
		prob, err := FromID(id, CaseParams{})
		if err != nil {
			t.Errorf("id %d: %v", id, err)
		}
		if prob == nil || prob.Name() == "" {
			t.Errorf("id %d: no problem", id)
		}
	}
}

func TestSingleCellAllocation(t *testing.T) {
	// One fully interior cell with L=8 sub-locations and D directions
	// must yield exactly L*D contiguous particles starting at offset 0.
	g := unitGeometry([3]int{1, 1, 1})
	opt := Options{NumFlavors: 2, NPPC: [3]int{2, 2, 2}, NPhiEquator: 1, Seed: 1}

	c, sum := initialize(t, g, VacuumOscillation{}, opt)

	wantPerLoc := sum.NumDirections
	want := 8 * wantPerLoc
	if sum.NumParticles != want {
		t.Fatalf("got %d particles, want %d", sum.NumParticles, want)
	}
	if c.Tile(0).Size() != want {
		t.Fatalf("tile holds %d particles, want %d", c.Tile(0).Size(), want)
	}

	// Ids are a contiguous block reserved once per tile, starting at 1.
	for i, p := range c.Tile(0).Particles() {
		if p.ID != int64(i+1) {
			t.Fatalf("particle %d has id %d, want %d", i, p.ID, i+1)
		}
		if p.Owner != 0 {
			t.Errorf("particle %d owner = %d, want 0", i, p.Owner)
		}
	}
}

func TestOutOfDomainSubLocationsDropped(t *testing.T) {
	// A tile extending one cell past the physical domain: the outside
	// cell contributes nothing.
	g := unitGeometry([3]int{2, 1, 1})
	box := geom.Box{Lo: [3]int{0, 0, 0}, Hi: [3]int{2, 0, 0}}
	c := particles.NewContainer([]geom.Box{box})
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 1, Seed: 1}

	sum, err := InitParticles(c, g, VacuumOscillation{}, opt, particles.NewIDAllocator(), par.Local{})
	if err != nil {
		t.Fatalf("InitParticles: %v", err)
	}

	want := 2 * sum.NumDirections
	if sum.NumParticles != want {
		t.Fatalf("got %d particles, want %d", sum.NumParticles, want)
	}
	for _, p := range c.Tile(0).Particles() {
		if !g.Contains(p.Pos[0], p.Pos[1], p.Pos[2]) {
			t.Errorf("particle at %v outside the domain", p.Pos)
		}
	}
}

func TestParticleTrackingFieldsStartAtEmission(t *testing.T) {
	g := unitGeometry([3]int{2, 2, 2})
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 2, Seed: 1}

	c, _ := initialize(t, g, BipolarOscillation{}, opt)
	c.ForEach(func(p *particles.Particle) {
		if p.IntPos != p.Pos {
			t.Errorf("integrated position %v differs from position %v", p.IntPos, p.Pos)
		}
		if p.Time != 0 {
			t.Errorf("elapsed time = %g, want 0", p.Time)
		}
	})
}

func TestVacuumOscillationState(t *testing.T) {
	g := unitGeometry([3]int{1, 1, 1})
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 2, Seed: 1}

	c, _ := initialize(t, g, VacuumOscillation{}, opt)

	wantE := phys.DM2() * phys.C4 * math.Sin(2*phys.Theta12) / (8 * math.Pi * phys.Hbarc)
	c.ForEach(func(p *particles.Particle) {
		if tr := p.F.Trace(); tr != 1.0 {
			t.Errorf("neutrino trace = %g, want exactly 1", tr)
		}
		if tr := p.Fbar.Trace(); tr != 1.0 {
			t.Errorf("antineutrino trace = %g, want exactly 1", tr)
		}
		if p.F.Diag[0] != 1.0 || p.Fbar.Diag[0] != 1.0 {
			t.Error("vacuum test must start pure electron flavor")
		}
		if p.N != 1.0 || p.Nbar != 1.0 {
			t.Errorf("weights = %g, %g, want unit", p.N, p.Nbar)
		}
		if p.Pupt != wantE {
			t.Errorf("energy = %g, want %g", p.Pupt, wantE)
		}
		// Momentum components follow the direction times energy.
		pm := math.Sqrt(p.Pupx*p.Pupx + p.Pupy*p.Pupy + p.Pupz*p.Pupz)
		if math.Abs(pm-p.Pupt) > 1e-9*p.Pupt {
			t.Errorf("|p| = %g, want %g", pm, p.Pupt)
		}
	})
}

func TestBipolarState(t *testing.T) {
	g := unitGeometry([3]int{1, 1, 1})
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 2, Seed: 1}

	c, sum := initialize(t, g, BipolarOscillation{}, opt)

	dx := g.CellSize()
	scale := dx[0] * dx[1] * dx[2] / 1 / float64(sum.NumDirections)
	wantN := 10.0 * phys.DM2() * phys.C4 / (2 * math.Sqrt2 * phys.GF * fiftyMeV) * scale

	c.ForEach(func(p *particles.Particle) {
		if tr := p.F.Trace(); tr != 1.0 {
			t.Errorf("trace = %g, want exactly 1", tr)
		}
		if p.Pupt != fiftyMeV {
			t.Errorf("energy = %g, want 50 MeV", p.Pupt)
		}
		if math.Abs(p.N-wantN) > 1e-12*wantN {
			t.Errorf("N = %g, want %g", p.N, wantN)
		}
	})
}

func TestTwoBeamWeights(t *testing.T) {
	// nphi_equator=1 produces exactly the two pole directions, where the
	// beam factors are (1+u_z)=2 and (1-u_z)=0.
	g := unitGeometry([3]int{1, 1, 1})
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 1, Seed: 1}

	c, sum := initialize(t, g, TwoBeamFastFlavor{}, opt)
	if sum.NumDirections != 2 {
		t.Fatalf("got %d directions, want the two poles", sum.NumDirections)
	}

	sawUp, sawDown := false, false
	c.ForEach(func(p *particles.Particle) {
		switch {
		case p.Pupz > 0: // u = (0,0,1)
			sawUp = true
			if p.Nbar != 0 {
				t.Errorf("up beam Nbar = %g, want exact 0", p.Nbar)
			}
			if p.N <= 0 {
				t.Errorf("up beam N = %g, want positive", p.N)
			}
		case p.Pupz < 0: // u = (0,0,-1)
			sawDown = true
			if p.N != 0 {
				t.Errorf("down beam N = %g, want exact 0", p.N)
			}
		}
	})
	if !sawUp || !sawDown {
		t.Error("expected both beam directions")
	}
}

func TestKBeamSeedsCoherence(t *testing.T) {
	g := geom.Geometry{
		Cells:  [3]int{1, 1, 8},
		ProbLo: [3]float64{0, 0, 0},
		ProbHi: [3]float64{1, 1, 8},
	}
	prob := &KBeamFastFlavor{KBeamParams: KBeamParams{WavelengthFraction: 1.0, Amplitude: 1e-6}}
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 1, Seed: 1}

	c, _ := initialize(t, g, prob, opt)

	nonzero := 0
	c.ForEach(func(p *particles.Particle) {
		if math.Abs(p.F.Re[0]) > 1e-12 {
			nonzero++
		}
		if p.F.Re[0] != p.Fbar.Re[0] {
			t.Error("k-beam seeds both sectors identically")
		}
		if math.Abs(p.F.Re[0]) > 1e-6 {
			t.Errorf("seed %g exceeds amplitude", p.F.Re[0])
		}
	})
	if nonzero == 0 {
		t.Error("sinusoidal seed vanished everywhere")
	}
}

func TestRandomizedDeterministicPerSeed(t *testing.T) {
	g := unitGeometry([3]int{2, 2, 2})
	prob := &RandomizedFastFlavor{RandomParams: RandomParams{
		NDens: 1e32, NDensBar: 1e32,
		FluxFac: 0.2, FluxFacBar: 0.1,
		FluxDir: sphere.Vec{0, 0, 1}, FluxDirBar: sphere.Vec{0, 0, -1},
		Amplitude: 1e-6,
	}}
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 2, Seed: 42}

	c1, _ := initialize(t, g, prob, opt)
	c2, _ := initialize(t, g, prob, opt)

	p1 := c1.Tile(0).Particles()
	p2 := c2.Tile(0).Particles()
	if len(p1) != len(p2) {
		t.Fatal("ensembles differ in size")
	}
	for i := range p1 {
		if p1[i].F.Re[0] != p2[i].F.Re[0] || p1[i].F.Im[0] != p2[i].F.Im[0] {
			t.Fatalf("particle %d: same seed produced different perturbations", i)
		}
	}
}

func TestMinerboTraces(t *testing.T) {
	g := unitGeometry([3]int{2, 2, 2})
	prob := &MinerboDistribution{MinerboParams: MinerboParams{
		NDensE: 1e32, NDensA: 0.8e32, NDensX: 0.5e32,
		FluxFacE: 0.3, FluxFacA: 0.2, FluxFacX: 0.1,
		FluxDirE: sphere.Vec{0, 0, 1}, FluxDirA: sphere.Vec{0, 0, 1}, FluxDirX: sphere.Vec{0, 0, 1},
		Amplitude: 1e-6,
	}}
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 4, Seed: 3}

	c, _ := initialize(t, g, prob, opt)

	c.ForEach(func(p *particles.Particle) {
		if math.Abs(p.F.Trace()-1.0) > 1e-12 {
			t.Errorf("neutrino trace = %g", p.F.Trace())
		}
		if math.Abs(p.Fbar.Trace()-1.0) > 1e-12 {
			t.Errorf("antineutrino trace = %g", p.Fbar.Trace())
		}
		if p.N <= 0 || p.Nbar <= 0 {
			t.Errorf("weights %g, %g must be positive", p.N, p.Nbar)
		}
		// Coherence seeds scale with the occupation gap and amplitude.
		gap := 0.5 * math.Abs(p.F.Diag[0]-p.F.Diag[1])
		if math.Abs(p.F.Re[0]) > 1e-6*gap {
			t.Errorf("coherence seed %g exceeds amplitude*gap", p.F.Re[0])
		}
	})
}

func TestFourierRequiresOneDimensional(t *testing.T) {
	g := unitGeometry([3]int{2, 2, 8})
	prob := &FourierComparison{FourierParams: FourierParams{Amplitude: 1e-6, NumModes: 4}}
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 1, Seed: 1}

	c := particles.NewContainer([]geom.Box{g.Domain()})
	_, err := InitParticles(c, g, prob, opt, particles.NewIDAllocator(), par.Local{})
	if !errors.Is(err, ErrNotOneDimensional) {
		t.Fatalf("err = %v, want ErrNotOneDimensional", err)
	}
}

func TestFourierConjugateSectors(t *testing.T) {
	g := geom.Geometry{
		Cells:  [3]int{1, 1, 16},
		ProbLo: [3]float64{0, 0, 0},
		ProbHi: [3]float64{1, 1, 16},
	}
	prob := &FourierComparison{FourierParams: FourierParams{Amplitude: 1e-6, NumModes: 4}}
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 1, Seed: 9}

	c, _ := initialize(t, g, prob, opt)

	nonzero := 0
	c.ForEach(func(p *particles.Particle) {
		if p.Fbar.Re[0] != p.F.Re[0] || p.Fbar.Im[0] != -p.F.Im[0] {
			t.Error("antineutrino coherence must be the complex conjugate")
		}
		if p.F.Im[0] != 0 {
			nonzero++
		}
	})
	if nonzero == 0 {
		t.Error("mode superposition vanished everywhere")
	}
}

func TestGaussianBumpLocalized(t *testing.T) {
	g := geom.Geometry{
		Cells:  [3]int{1, 1, 32},
		ProbLo: [3]float64{0, 0, 0},
		ProbHi: [3]float64{1, 1, 32},
	}
	prob := &GaussianComparison{GaussianParams: GaussianParams{Amplitude: 1e-6, Center: 0.5, Width: 0.05}}
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 1, Seed: 1}

	c, _ := initialize(t, g, prob, opt)

	var peak, edge float64
	c.ForEach(func(p *particles.Particle) {
		z := p.Pos[2]
		if math.Abs(z-16) < 1 && p.F.Re[0] > peak {
			peak = p.F.Re[0]
		}
		if z < 2 && p.F.Re[0] > edge {
			edge = p.F.Re[0]
		}
	})
	if peak <= edge {
		t.Errorf("bump not localized: peak %g, edge %g", peak, edge)
	}
	if peak > 1e-6 {
		t.Errorf("peak %g exceeds amplitude", peak)
	}
}

func TestSummaryMinEnergy(t *testing.T) {
	g := unitGeometry([3]int{1, 1, 1})
	opt := Options{NumFlavors: 2, NPPC: [3]int{1, 1, 1}, NPhiEquator: 2, Seed: 1}

	_, sum := initialize(t, g, BipolarOscillation{}, opt)
	if sum.MinEnergy != fiftyMeV {
		t.Errorf("min energy = %g, want %g", sum.MinEnergy, fiftyMeV)
	}
}
