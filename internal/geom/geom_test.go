package geom

import "testing"

func TestBoxDims(t *testing.T) {
	b := Box{Lo: [3]int{2, 0, 0}, Hi: [3]int{5, 3, 1}}
	nx, ny, nz := b.Dims()
	if nx != 4 || ny != 4 || nz != 2 {
		t.Errorf("dims = (%d,%d,%d), want (4,4,2)", nx, ny, nz)
	}
	if b.NumPts() != 32 {
		t.Errorf("NumPts = %d, want 32", b.NumPts())
	}
}

func TestCellIDOrder(t *testing.T) {
	// x-major with z fastest: (i,j,k) -> ((i*ny)+j)*nz + k.
	b := Box{Lo: [3]int{0, 0, 0}, Hi: [3]int{1, 2, 3}}
	want := 0
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 2; j++ {
			for k := 0; k <= 3; k++ {
				if id := b.CellID(i, j, k); id != want {
					t.Fatalf("CellID(%d,%d,%d) = %d, want %d", i, j, k, id, want)
				}
				want++
			}
		}
	}
}

func TestCellIDClamps(t *testing.T) {
	b := Box{Lo: [3]int{0, 0, 0}, Hi: [3]int{3, 3, 3}}
	if id := b.CellID(-1, 0, 0); id != b.CellID(0, 0, 0) {
		t.Errorf("low clamp failed: %d", id)
	}
	if id := b.CellID(7, 3, 3); id != b.CellID(3, 3, 3) {
		t.Errorf("high clamp failed: %d", id)
	}
}

func TestGeometryContains(t *testing.T) {
	g := Geometry{Cells: [3]int{4, 4, 4}, ProbLo: [3]float64{0, 0, 0}, ProbHi: [3]float64{1, 1, 1}}

	tests := []struct {
		x, y, z float64
		want    bool
	}{
		{0.5, 0.5, 0.5, true},
		{0, 0, 0, true},     // lower bound inclusive
		{1, 0.5, 0.5, false}, // upper bound exclusive
		{0.5, -0.1, 0.5, false},
	}
	for _, tt := range tests {
		if got := g.Contains(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("Contains(%g,%g,%g) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestGeometryCellSize(t *testing.T) {
	g := Geometry{Cells: [3]int{4, 2, 1}, ProbLo: [3]float64{0, 0, 0}, ProbHi: [3]float64{1, 1, 8}}
	dx := g.CellSize()
	if dx[0] != 0.25 || dx[1] != 0.5 || dx[2] != 8 {
		t.Errorf("CellSize = %v", dx)
	}
}

func TestGeometryTiles(t *testing.T) {
	g := Geometry{Cells: [3]int{8, 4, 4}, ProbLo: [3]float64{0, 0, 0}, ProbHi: [3]float64{1, 1, 1}}

	tiles := g.Tiles(4)
	if len(tiles) != 4 {
		t.Fatalf("got %d tiles, want 4", len(tiles))
	}
	total := 0
	for _, b := range tiles {
		total += b.NumPts()
	}
	if total != g.Domain().NumPts() {
		t.Errorf("tiles cover %d cells, want %d", total, g.Domain().NumPts())
	}

	// More tiles than x-planes collapses to one tile per plane.
	if got := len(g.Tiles(100)); got != 8 {
		t.Errorf("got %d tiles, want 8", got)
	}
}
