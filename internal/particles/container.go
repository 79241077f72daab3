package particles

import (
	"math"

	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/par"
)

// Tile owns the particles of one grid tile, stored contiguously. Only the
// owning tile's code path mutates it.
type Tile struct {
	Box   geom.Box
	parts []Particle
}

// Size returns the current particle count.
func (t *Tile) Size() int { return len(t.parts) }

// Resize grows or shrinks the storage to n particles, preserving existing
// records.
func (t *Tile) Resize(n int) {
	if n <= cap(t.parts) {
		t.parts = t.parts[:n]
		return
	}
	grown := make([]Particle, n)
	copy(grown, t.parts)
	t.parts = grown
}

// Particles returns the mutable contiguous view of the tile's records.
func (t *Tile) Particles() []Particle { return t.parts }

// Container stores particles keyed by tile, mirroring the grid
// decomposition it was built from.
type Container struct {
	tiles []*Tile
}

// NewContainer returns empty per-tile storage for the given decomposition.
func NewContainer(boxes []geom.Box) *Container {
	tiles := make([]*Tile, len(boxes))
	for i, b := range boxes {
		tiles[i] = &Tile{Box: b}
	}
	return &Container{tiles: tiles}
}

// NumTiles returns the tile count.
func (c *Container) NumTiles() int { return len(c.tiles) }

// Tile returns the storage for tile i.
func (c *Container) Tile(i int) *Tile { return c.tiles[i] }

// TotalParticles returns the particle count over all tiles.
func (c *Container) TotalParticles() int {
	n := 0
	for _, t := range c.tiles {
		n += len(t.parts)
	}
	return n
}

// ForEach calls fn for every particle in tile-major, storage order.
func (c *Container) ForEach(fn func(p *Particle)) {
	for _, t := range c.tiles {
		for i := range t.parts {
			fn(&t.parts[i])
		}
	}
}

// Clone returns a deep copy of the container, including flavor matrices.
// Lyapunov analysis uses this to hold a reference ensemble.
func (c *Container) Clone() *Container {
	out := &Container{tiles: make([]*Tile, len(c.tiles))}
	for i, t := range c.tiles {
		nt := &Tile{Box: t.Box, parts: make([]Particle, len(t.parts))}
		copy(nt.parts, t.parts)
		for j := range nt.parts {
			nt.parts[j].F = t.parts[j].F.Clone()
			nt.parts[j].Fbar = t.parts[j].Fbar.Clone()
		}
		out.tiles[i] = nt
	}
	return out
}

// MinEnergy returns the smallest particle energy across all tiles and all
// ranks; callers use it to pick a stable time step. Returns +Inf for an
// empty ensemble.
func (c *Container) MinEnergy(comm par.Comm) float64 {
	min := math.Inf(1)
	c.ForEach(func(p *Particle) {
		if p.Pupt < min {
			min = p.Pupt
		}
	})
	return comm.AllReduceMin(min)
}
