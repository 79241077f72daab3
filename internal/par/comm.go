package par

// Comm is the cross-process surface of the parallel runtime: a rank
// identity, an all-reduce minimum, and a one-to-all broadcast. The
// distributed implementation lives outside this module; Local covers the
// single-process case.
type Comm interface {
	// Rank returns this process's id in [0, NumRanks).
	Rank() int
	// NumRanks returns the number of cooperating processes.
	NumRanks() int
	// AllReduceMin returns the minimum of v across all ranks.
	AllReduceMin(v float64) float64
	// Broadcast distributes data from the root rank to every other rank,
	// overwriting the slice contents on non-root ranks.
	Broadcast(root int, data []float64)
}

// Local is the single-process Comm: rank 0 of 1, reductions and broadcasts
// are identities.
type Local struct{}

func (Local) Rank() int                        { return 0 }
func (Local) NumRanks() int                    { return 1 }
func (Local) AllReduceMin(v float64) float64   { return v }
func (Local) Broadcast(root int, data []float64) {}
