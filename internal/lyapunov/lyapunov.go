// Package lyapunov measures the divergence of two particle ensembles in
// flavor-state space: perturb one ensemble, track the L2 distance between
// matched particles, and rescale the deviation back to a fixed amplitude.
// This is the diagnostic toolkit behind Lyapunov-exponent estimates; the
// quadratic particle matching is deliberate and not a hot path.
package lyapunov

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/sgarrel/nuflav/internal/flavor"
	"github.com/sgarrel/nuflav/internal/particles"
)

// ErrZeroMagnitude indicates a renormalization was requested against a
// zero ensemble distance. The operation is reported and skipped; callers
// treat it as a non-fatal configuration error.
var ErrZeroMagnitude = errors.New("lyapunov: zero distance magnitude, renormalization skipped")

// MatchMode selects how particles are paired across the two ensembles.
type MatchMode int

const (
	// MatchByFields pairs particles whose position, elapsed time and
	// four-momentum are exactly equal in floating point. This is the
	// inherited behavior; it is fragile once the two ensembles have been
	// evolved independently.
	MatchByFields MatchMode = iota

	// MatchByIdentity pairs particles by their (ID, Owner) tag, which is
	// carried from creation and immune to floating-point drift. Recommended.
	MatchByIdentity
)

// Config tunes the toolkit: the perturbation amplitude used by Perturb and
// as the renormalization target, and the pairing mode.
type Config struct {
	Amplitude float64
	Match     MatchMode
}

// Report collects non-fatal consistency diagnostics. Execution continues
// after any of these; the data is a quality warning, not a guarantee.
type Report struct {
	Unmatched       int
	TraceViolations int
	Messages        []string
}

func (r *Report) addf(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// OK reports whether no diagnostic fired.
func (r *Report) OK() bool { return r.Unmatched == 0 && r.TraceViolations == 0 }

// Perturb applies independent symmetric-random perturbations to every
// flavor-state component of every particle in both sectors. Coherence
// kicks scale with the sum of the adjacent occupations; occupations are
// renormalized by 1/(1+sum of diagonal kicks) so traces stay near 1.
func Perturb(ens *particles.Container, amplitude float64, rng *rand.Rand) {
	ens.ForEach(func(p *particles.Particle) {
		perturbMatrix(&p.F, amplitude, rng)
		perturbMatrix(&p.Fbar, amplitude, rng)
	})
}

func perturbMatrix(m *flavor.Matrix, amplitude float64, rng *rand.Rand) {
	n := m.NumFlavors()

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			idx := flavor.PairIndex(n, i, j)
			adjacent := m.Diag[i] + m.Diag[j]
			m.Re[idx] += amplitude * flavor.SymRand(rng) * adjacent
			m.Im[idx] += amplitude * flavor.SymRand(rng) * adjacent
		}
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		kick := amplitude * flavor.SymRand(rng)
		m.Diag[i] *= 1.0 + kick
		sum += kick
	}
	for i := 0; i < n; i++ {
		m.Diag[i] /= 1.0 + sum
	}
}

// Distance returns the L2 norm over the full multi-particle flavor-state
// space: the square root of the summed squared component differences
// between every particle of cur and its match in ref. Unmatched particles
// are reported in the Report and skipped.
func Distance(cur, ref *particles.Container, mode MatchMode) (float64, *Report) {
	rep := &Report{}
	match := matcher(ref, mode)

	total := 0.0
	var cbuf, rbuf []float64
	cur.ForEach(func(p *particles.Particle) {
		q := match(p)
		if q == nil {
			rep.Unmatched++
			rep.addf("particle id=%d owner=%d has no match in reference ensemble", p.ID, p.Owner)
			return
		}
		cbuf = p.AppendState(cbuf[:0])
		rbuf = q.AppendState(rbuf[:0])
		d := floats.Distance(cbuf, rbuf, 2)
		total += d * d
	})

	return math.Sqrt(total), rep
}

// Renormalize rescales each matched particle's flavor-state deviation from
// ref by target/magnitude, where magnitude is the current ensemble
// distance as measured by Distance. A zero magnitude is reported and the
// call is a no-op. After rescaling, any particle whose occupation sum
// falls outside [0.99, 1.01] is reported; execution continues.
func Renormalize(cur, ref *particles.Container, magnitude float64, cfg Config) (*Report, error) {
	rep := &Report{}
	if magnitude == 0 {
		rep.addf("renormalization target division by zero magnitude")
		return rep, ErrZeroMagnitude
	}

	scale := cfg.Amplitude / magnitude
	match := matcher(ref, cfg.Match)

	cur.ForEach(func(p *particles.Particle) {
		q := match(p)
		if q == nil {
			rep.Unmatched++
			rep.addf("particle id=%d owner=%d has no match in reference ensemble", p.ID, p.Owner)
			return
		}

		rescaleMatrix(&p.F, &q.F, scale)
		rescaleMatrix(&p.Fbar, &q.Fbar, scale)

		for _, tr := range []float64{p.F.Trace(), p.Fbar.Trace()} {
			if tr < 0.99 || tr > 1.01 {
				rep.TraceViolations++
				rep.addf("particle id=%d occupation sum %g outside [0.99,1.01] after renormalization", p.ID, tr)
			}
		}
	})

	return rep, nil
}

func rescaleMatrix(m, ref *flavor.Matrix, scale float64) {
	for i := range m.Diag {
		m.Diag[i] = ref.Diag[i] + (m.Diag[i]-ref.Diag[i])*scale
	}
	for i := range m.Re {
		m.Re[i] = ref.Re[i] + (m.Re[i]-ref.Re[i])*scale
		m.Im[i] = ref.Im[i] + (m.Im[i]-ref.Im[i])*scale
	}
}

type identityKey struct {
	id    int64
	owner int
}

// matcher returns a lookup from a current-ensemble particle to its
// counterpart in ref, or nil when none exists.
func matcher(ref *particles.Container, mode MatchMode) func(*particles.Particle) *particles.Particle {
	if mode == MatchByIdentity {
		index := make(map[identityKey]*particles.Particle, ref.TotalParticles())
		ref.ForEach(func(q *particles.Particle) {
			index[identityKey{q.ID, q.Owner}] = q
		})
		return func(p *particles.Particle) *particles.Particle {
			return index[identityKey{p.ID, p.Owner}]
		}
	}

	var pool []*particles.Particle
	ref.ForEach(func(q *particles.Particle) { pool = append(pool, q) })
	return func(p *particles.Particle) *particles.Particle {
		for _, q := range pool {
			if q.Pos == p.Pos && q.Time == p.Time &&
				q.Pupt == p.Pupt && q.Pupx == p.Pupx && q.Pupy == p.Pupy && q.Pupz == p.Pupz {
				return q
			}
		}
		return nil
	}
}
