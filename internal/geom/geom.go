// Package geom describes the structured spatial grid the initializer runs
// over: a uniform cell lattice inside a rectangular physical domain, carved
// into index-box tiles for parallel processing.
package geom

// Box is an inclusive cell-index box [Lo, Hi] per axis.
type Box struct {
	Lo [3]int
	Hi [3]int
}

// Dims returns the cell counts of the box per axis.
func (b Box) Dims() (nx, ny, nz int) {
	return b.Hi[0] - b.Lo[0] + 1, b.Hi[1] - b.Lo[1] + 1, b.Hi[2] - b.Lo[2] + 1
}

// NumPts returns the number of cells in the box.
func (b Box) NumPts() int {
	nx, ny, nz := b.Dims()
	return nx * ny * nz
}

// CellID maps global cell indices to a box-local linear id, x-major with z
// fastest. Indices are clamped into the box to guard against fractional
// tile-boundary artifacts.
func (b Box) CellID(i, j, k int) int {
	nx, ny, nz := b.Dims()
	ix := clamp(i-b.Lo[0], 0, nx-1)
	iy := clamp(j-b.Lo[1], 0, ny-1)
	iz := clamp(k-b.Lo[2], 0, nz-1)
	return (ix*ny+iy)*nz + iz
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Geometry is a uniform grid of Cells cells spanning the physical domain
// [ProbLo, ProbHi), inclusive at the lower bound and exclusive at the upper.
type Geometry struct {
	Cells  [3]int
	ProbLo [3]float64
	ProbHi [3]float64
}

// CellSize returns the physical cell extent per axis.
func (g Geometry) CellSize() [3]float64 {
	var dx [3]float64
	for a := 0; a < 3; a++ {
		dx[a] = (g.ProbHi[a] - g.ProbLo[a]) / float64(g.Cells[a])
	}
	return dx
}

// Length returns the physical domain extent along axis a.
func (g Geometry) Length(a int) float64 {
	return g.ProbHi[a] - g.ProbLo[a]
}

// Contains reports whether the physical position lies inside the domain
// bounds (lower bound inclusive, upper exclusive per axis).
func (g Geometry) Contains(x, y, z float64) bool {
	p := [3]float64{x, y, z}
	for a := 0; a < 3; a++ {
		if p[a] < g.ProbLo[a] || p[a] >= g.ProbHi[a] {
			return false
		}
	}
	return true
}

// Domain returns the index box covering the whole grid.
func (g Geometry) Domain() Box {
	return Box{
		Lo: [3]int{0, 0, 0},
		Hi: [3]int{g.Cells[0] - 1, g.Cells[1] - 1, g.Cells[2] - 1},
	}
}

// Tiles splits the domain into n index boxes along the x axis. Fewer boxes
// are returned when the grid has fewer than n x-planes.
func (g Geometry) Tiles(n int) []Box {
	if n < 1 {
		n = 1
	}
	if n > g.Cells[0] {
		n = g.Cells[0]
	}
	tiles := make([]Box, 0, n)
	chunk := (g.Cells[0] + n - 1) / n
	for lo := 0; lo < g.Cells[0]; lo += chunk {
		hi := lo + chunk - 1
		if hi > g.Cells[0]-1 {
			hi = g.Cells[0] - 1
		}
		tiles = append(tiles, Box{
			Lo: [3]int{lo, 0, 0},
			Hi: [3]int{hi, g.Cells[1] - 1, g.Cells[2] - 1},
		})
	}
	return tiles
}
