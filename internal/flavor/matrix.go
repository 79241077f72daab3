// Package flavor implements the per-particle flavor density matrix: diagonal
// occupation probabilities plus upper-triangle coherence terms, stored as
// independent real components.
package flavor

import "math/rand"

// Matrix is a Hermitian flavor density matrix. Only the upper triangle is
// stored: Diag[i] holds the real occupation of flavor i, and the coherence
// between flavors i<j lives at Re[PairIndex(n,i,j)], Im[PairIndex(n,i,j)].
type Matrix struct {
	Diag []float64
	Re   []float64
	Im   []float64
}

// New returns a zero matrix for n flavors.
func New(n int) Matrix {
	return Matrix{
		Diag: make([]float64, n),
		Re:   make([]float64, n*(n-1)/2),
		Im:   make([]float64, n*(n-1)/2),
	}
}

// NewPure returns the pure state |f><f| for n flavors.
func NewPure(n, f int) Matrix {
	m := New(n)
	m.Diag[f] = 1.0
	return m
}

// PairIndex maps an upper-triangle pair (i<j) to its storage slot for an
// n-flavor matrix, row-major: (0,1),(0,2),...,(0,n-1),(1,2),...
func PairIndex(n, i, j int) int {
	return i*n - i*(i+1)/2 + (j - i - 1)
}

// NumFlavors returns the flavor count n.
func (m Matrix) NumFlavors() int { return len(m.Diag) }

// Trace returns the sum of diagonal occupations. Physical states have
// trace approximately 1.
func (m Matrix) Trace() float64 {
	sum := 0.0
	for _, d := range m.Diag {
		sum += d
	}
	return sum
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	c := New(len(m.Diag))
	copy(c.Diag, m.Diag)
	copy(c.Re, m.Re)
	copy(c.Im, m.Im)
	return c
}

// Conj returns the complex conjugate matrix (negated coherence imaginary
// parts). Occupations are real and unchanged.
func (m Matrix) Conj() Matrix {
	c := m.Clone()
	for i := range c.Im {
		c.Im[i] = -c.Im[i]
	}
	return c
}

// NumComponents returns the number of independent real components.
func (m Matrix) NumComponents() int {
	return len(m.Diag) + len(m.Re) + len(m.Im)
}

// AppendComponents appends every independent real component to dst in a
// fixed order (diagonal terms, then coherence real parts, then imaginary
// parts) and returns the extended slice.
func (m Matrix) AppendComponents(dst []float64) []float64 {
	dst = append(dst, m.Diag...)
	dst = append(dst, m.Re...)
	return append(dst, m.Im...)
}

// SymRand draws a symmetric uniform variate in [-1,1) as 2*(u-0.5).
// Every randomized recipe in this package tree uses this one convention.
func SymRand(rng *rand.Rand) float64 {
	return 2.0 * (rng.Float64() - 0.5)
}
