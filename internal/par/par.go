// Package par provides the synchronous data-parallel primitives the
// initializer fans out over: chunked parallel-for over linear and grid
// index ranges, an inclusive prefix sum, and the cross-process reduction
// and broadcast surface.
package par

import (
	"runtime"
	"sync"

	"github.com/sgarrel/nuflav/internal/geom"
)

// For executes fn over [0, n) split into contiguous chunks, one goroutine
// per chunk. It returns only after every chunk completes. Ranges smaller
// than minChunk run inline.
func For(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ForBox executes fn once per cell of b, possibly concurrently. The cell
// order within a chunk matches geom.Box.CellID (x-major, z fastest), but
// callers must not rely on any ordering across cells.
func ForBox(b geom.Box, fn func(i, j, k int)) {
	nx, ny, nz := b.Dims()
	For(nx*ny*nz, 64, func(start, end int) {
		for id := start; id < end; id++ {
			i := id / (ny * nz)
			rem := id % (ny * nz)
			fn(b.Lo[0]+i, b.Lo[1]+rem/nz, b.Lo[2]+rem%nz)
		}
	})
}

// InclusiveScan replaces counts with its inclusive running sum and returns
// the total (the last entry, or 0 for an empty slice).
func InclusiveScan(counts []int) int {
	sum := 0
	for i, c := range counts {
		sum += c
		counts[i] = sum
	}
	return sum
}
