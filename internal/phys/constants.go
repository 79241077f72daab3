// Package phys holds the physical constants used by the initial-condition
// recipes, all in CGS units.
package phys

import "math"

const (
	// EV is one electron-volt in erg.
	EV = 1.60218e-12

	// C is the speed of light in cm/s.
	C  = 2.99792458e10
	C2 = C * C
	C4 = C2 * C2

	// Hbar is the reduced Planck constant in erg*s.
	Hbar = 1.05457266e-27

	// Hbarc is hbar*c in erg*cm.
	Hbarc = Hbar * C

	// Theta12 is the solar mixing angle in radians (33.82 degrees).
	Theta12 = 33.82 * math.Pi / 180.0
)

// GF is the Fermi coupling constant in erg*cm^3.
// 1.1663787e-5 GeV^-2 converted via (hbar c)^3.
var GF = 1.1663787e-5 / (1e9 * EV * 1e9 * EV) * Hbarc * Hbarc * Hbarc

// Neutrino masses in grams. Mass1 is taken as zero; Mass2 follows from the
// solar mass splitting dm21^2 = 7.39e-5 eV^2.
var (
	Mass1 = 0.0
	Mass2 = math.Sqrt(7.39e-5) * EV / C2
)

// DM2 returns the squared mass difference (mass2-mass1)^2 in g^2.
func DM2() float64 {
	d := Mass2 - Mass1
	return d * d
}
