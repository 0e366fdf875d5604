package board

// Pool hands out reusable Position instances so that a deep search does
// not allocate a fresh board for every node. Every instance the pool ever
// creates stays in its arena; free holds the ones not currently acquired.
//
// A Pool is not safe for concurrent use. Give each search goroutine its
// own.
type Pool struct {
	arena []*Position
	free  []*Position
}

func NewPool() *Pool {
	return &Pool{}
}

// Acquire returns a position that is a duplicate of src. It reuses a
// released instance when one is available.
func (pl *Pool) Acquire(src *Position) *Position {
	var p *Position
	if n := len(pl.free); n > 0 {
		p = pl.free[n-1]
		pl.free[n-1] = nil
		pl.free = pl.free[:n-1]
	} else {
		p = &Position{pool: pl}
		pl.arena = append(pl.arena, p)
	}
	p.available = false
	p.CopyFrom(src)
	return p
}

// Release gives p back to the pool. Positions that were not handed out by
// this pool, or that were already released, are ignored.
func (pl *Pool) Release(p *Position) {
	if p == nil || p.pool != pl || p.available {
		return
	}
	p.available = true
	pl.free = append(pl.free, p)
}

// Allocated is the number of instances this pool has created.
func (pl *Pool) Allocated() int {
	return len(pl.arena)
}

// Available is the number of released instances waiting to be reused.
func (pl *Pool) Available() int {
	return len(pl.free)
}

// InUse is the number of instances currently acquired.
func (pl *Pool) InUse() int {
	return len(pl.arena) - len(pl.free)
}
