// Package particles defines the super-particle record and the per-tile
// resizable storage that owns every particle created during initialization.
package particles

import "github.com/sgarrel/nuflav/internal/flavor"

// Particle is one super-particle: a bundled population of physical
// neutrinos sharing position, direction and energy, carrying a flavor
// density matrix for each of the neutrino and antineutrino sectors.
type Particle struct {
	// ID is process-unique and monotonically increasing; Owner tags the
	// process that created the particle.
	ID    int64
	Owner int

	// Pos is the physical position of the sampling location. IntPos and
	// Time track the path-integrated position and elapsed time and start
	// equal to Pos and zero.
	Pos    [3]float64
	IntPos [3]float64
	Time   float64

	// Four-momentum: energy Pupt and components Pup[a] = direction[a]*Pupt.
	Pupt float64
	Pupx float64
	Pupy float64
	Pupz float64

	// Flavor state per sector and the physical number densities the
	// particle represents.
	F    flavor.Matrix
	Fbar flavor.Matrix
	N    float64
	Nbar float64
}

// Momentum returns the spatial momentum components as a single array.
func (p *Particle) Momentum() [3]float64 {
	return [3]float64{p.Pupx, p.Pupy, p.Pupz}
}

// AppendState appends every flavor-state component of both sectors to dst
// and returns the extended slice. The order is fixed so two particles with
// equal flavor counts produce aligned vectors.
func (p *Particle) AppendState(dst []float64) []float64 {
	dst = p.F.AppendComponents(dst)
	return p.Fbar.AppendComponents(dst)
}
