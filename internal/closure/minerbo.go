// Package closure implements the Minerbo maximum-entropy angular closure:
// a one-parameter distribution shape fit to a prescribed flux factor.
package closure

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence indicates the Newton iteration failed to reach the
// residual tolerance. This is a fatal configuration error for callers.
var ErrNoConvergence = errors.New("closure: minerbo root-find did not converge")

const (
	maxIterations = 20
	tolerance     = 1e-6

	// Below this flux factor the Newton form is a near-0/0 expression;
	// the closure is linear there with Z = 3f.
	linearRegime = 1e-3
)

// Residual is the root equation f - coth(Z) + 1/Z whose zero defines the
// shape parameter Z for flux factor f.
func Residual(fluxfac, z float64) float64 {
	return fluxfac - 1.0/math.Tanh(z) + 1.0/z
}

func residualDeriv(z float64) float64 {
	s := math.Sinh(z)
	return 1.0/(s*s) - 1.0/(z*z)
}

// SolveZ returns the shape parameter Z >= 0 such that the closure
// distribution has unit zeroth moment and flux factor fluxfac in [0,1).
func SolveZ(fluxfac float64) (float64, error) {
	if fluxfac < linearRegime {
		return 3.0 * fluxfac, nil
	}

	z := 1.0
	for i := 0; i < maxIterations; i++ {
		r := Residual(fluxfac, z)
		if math.Abs(r) < tolerance {
			return z, nil
		}
		z -= r / residualDeriv(z)
	}
	return 0, fmt.Errorf("%w (fluxfac=%g)", ErrNoConvergence, fluxfac)
}

// AngularWeight evaluates the closure weight exp(Z*mu), normalized by
// Z/sinh(Z) so the average over the sphere is 1. The normalization is
// skipped in the near-isotropic regime Z/3 < 1e-3 where it tends to 1
// and the sinh form loses accuracy.
func AngularWeight(z, mu float64) float64 {
	w := math.Exp(z * mu)
	if z/3.0 >= linearRegime {
		w *= z / math.Sinh(z)
	}
	return w
}
