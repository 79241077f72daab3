package initcond

import (
	"math/rand"

	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/par"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/sphere"
)

// Options selects the sampling density of the initializer: flavors per
// sector, sub-locations per cell per axis, equatorial direction count, and
// the seed for every random draw.
type Options struct {
	NumFlavors  int
	NPPC        [3]int
	NPhiEquator int
	Seed        int64
}

// Summary reports what an initialization call produced.
type Summary struct {
	NumDirections int
	NumParticles  int
	MinEnergy     float64
}

// InitParticles populates the container with one particle per surviving
// (cell, sub-location, direction) combination, initialized by prob.
//
// Per tile the protocol is: count surviving combinations per cell, take an
// inclusive prefix sum for block offsets, resize the tile storage once,
// reserve a contiguous id block, then fill every slot. Counting and
// filling fan out over cells; the scan, resize and id reservation are the
// only serialization points.
func InitParticles(c *particles.Container, g geom.Geometry, prob TestProblem, opt Options, ids *particles.IDAllocator, comm par.Comm) (*Summary, error) {
	dirs := sphere.Uniform(opt.NPhiEquator)
	ndirs := len(dirs)
	nlocs := opt.NPPC[0] * opt.NPPC[1] * opt.NPPC[2]

	dx := g.CellSize()
	scaleFac := dx[0] * dx[1] * dx[2] / float64(nlocs) / float64(ndirs)

	if prep, ok := prob.(preparer); ok {
		rng := rand.New(rand.NewSource(opt.Seed))
		if err := prep.prepare(g, comm, rng); err != nil {
			return nil, err
		}
	}

	rank := comm.Rank()

	for ti := 0; ti < c.NumTiles(); ti++ {
		tile := c.Tile(ti)
		box := tile.Box

		// Count pass: each cell credits itself with ndirs particles per
		// sub-location that lands inside the physical domain. Boundary
		// tiles may be partially outside.
		counts := make([]int, box.NumPts())
		par.ForBox(box, func(i, j, k int) {
			for loc := 0; loc < nlocs; loc++ {
				x, y, z := locPosition(g, opt.NPPC, i, j, k, loc)
				if !g.Contains(x, y, z) {
					continue
				}
				counts[box.CellID(i, j, k)] += ndirs
			}
		})

		// Offset pass: inclusive scan, then resize once. The fill pass
		// must not start before both complete.
		offsets := make([]int, len(counts))
		copy(offsets, counts)
		total := par.InclusiveScan(offsets)
		if total == 0 {
			continue
		}

		base := tile.Size()
		tile.Resize(base + total)
		block := tile.Particles()[base:]

		firstID := ids.Reserve(total)

		// Fill pass: re-derive each surviving combination's slot from the
		// cell's block offset.
		par.ForBox(box, func(i, j, k int) {
			cellid := box.CellID(i, j, k)
			gid := (i*g.Cells[1]+j)*g.Cells[2] + k
			env := Env{
				ScaleFac:   scaleFac,
				Geom:       g,
				NumFlavors: opt.NumFlavors,
				RNG:        rand.New(rand.NewSource(opt.Seed + int64(gid)*1000003)),
			}

			for loc := 0; loc < nlocs; loc++ {
				x, y, z := locPosition(g, opt.NPPC, i, j, k, loc)
				if !g.Contains(x, y, z) {
					continue
				}

				for d := 0; d < ndirs; d++ {
					pidx := offsets[cellid] - offsets[0] + loc*ndirs + d
					p := &block[pidx]
					p.ID = firstID + int64(pidx)
					p.Owner = rank
					p.Pos = [3]float64{x, y, z}
					p.IntPos = p.Pos
					p.Time = 0

					env.Pos = p.Pos
					env.U = dirs[d]
					prob.Init(p, &env)
				}
			}
		})
	}

	return &Summary{
		NumDirections: ndirs,
		NumParticles:  c.TotalParticles(),
		MinEnergy:     c.MinEnergy(comm),
	}, nil
}

// locPosition returns the absolute position of sub-location loc inside
// cell (i,j,k). Sub-locations sit at (0.5+m)/n per axis, decoded x-major.
func locPosition(g geom.Geometry, nppc [3]int, i, j, k, loc int) (x, y, z float64) {
	nx, ny, nz := nppc[0], nppc[1], nppc[2]
	ix := loc / (ny * nz)
	iy := (loc % (ny * nz)) % ny
	iz := (loc % (ny * nz)) / ny

	dx := g.CellSize()
	x = g.ProbLo[0] + (float64(i)+(0.5+float64(ix))/float64(nx))*dx[0]
	y = g.ProbLo[1] + (float64(j)+(0.5+float64(iy))/float64(ny))*dx[1]
	z = g.ProbLo[2] + (float64(k)+(0.5+float64(iz))/float64(nz))*dx[2]
	return x, y, z
}
