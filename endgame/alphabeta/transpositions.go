package alphabeta

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Bound says how a stored score relates to the true value of the node.
// A score found inside the alpha-beta window is exact; one that caused a
// cutoff only bounds the true value.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "exact"
}

// approximate per-entry cost of the map, key and value included.
const entrySize = 64

// Never pre-allocate more than this many entries, whatever the memory
// fraction says.
const maxPreallocEntries = 1 << 22

type tableKey struct {
	hash  uint64
	depth int
}

type TableEntry struct {
	Hash  uint64
	Depth int
	Score float64
	Bound Bound
}

// TranspositionTable memoizes subtree scores by position hash and
// remaining depth. It grows without bound. It is not safe for concurrent
// use; parallel searches give every goroutine its own Clone.
type TranspositionTable struct {
	table map[tableKey]TableEntry

	stores  atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{table: make(map[tableKey]TableEntry)}
}

// Reset clears the table and its counters. The new map is pre-sized to
// hold roughly fractionOfMemory of the system's memory.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desired := fractionOfMemory * float64(totalMem) / float64(entrySize)
	hint := int(math.Min(math.Max(desired, 0), maxPreallocEntries))
	t.table = make(map[tableKey]TableEntry, hint)
	t.stores.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)

	log.Debug().Int("prealloc-entries", hint).
		Float64("desired-num-elems", desired).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-reset")
}

// Put stores an exact score, overwriting whatever was there.
func (t *TranspositionTable) Put(hash uint64, depth int, score float64) {
	t.Store(TableEntry{Hash: hash, Depth: depth, Score: score, Bound: BoundExact})
}

// Store saves an entry unconditionally.
func (t *TranspositionTable) Store(e TableEntry) {
	t.table[tableKey{e.Hash, e.Depth}] = e
	t.stores.Add(1)
}

// Lookup returns the entry for hash at exactly this depth.
func (t *TranspositionTable) Lookup(hash uint64, depth int) (TableEntry, bool) {
	t.lookups.Add(1)
	e, ok := t.table[tableKey{hash, depth}]
	if !ok || e.Depth != depth {
		return TableEntry{}, false
	}
	t.hits.Add(1)
	return e, true
}

// Clone returns an independent copy of the entries. Counters start at
// zero.
func (t *TranspositionTable) Clone() *TranspositionTable {
	c := &TranspositionTable{table: make(map[tableKey]TableEntry, len(t.table))}
	for k, v := range t.table {
		c.table[k] = v
	}
	return c
}

// Merge folds other tables into t. An exact entry is never replaced by a
// bound. The counters of the other tables are added to t's.
func (t *TranspositionTable) Merge(others ...*TranspositionTable) {
	for _, o := range others {
		if o == nil || o == t {
			continue
		}
		for k, v := range o.table {
			if cur, ok := t.table[k]; ok && cur.Bound == BoundExact && v.Bound != BoundExact {
				continue
			}
			t.table[k] = v
		}
		t.stores.Add(o.stores.Load())
		t.lookups.Add(o.lookups.Load())
		t.hits.Add(o.hits.Load())
	}
}

func (t *TranspositionTable) Len() int {
	return len(t.table)
}

func (t *TranspositionTable) Stores() uint64  { return t.stores.Load() }
func (t *TranspositionTable) Lookups() uint64 { return t.lookups.Load() }
func (t *TranspositionTable) Hits() uint64    { return t.hits.Load() }

// HitRate is hits over lookups, as a percentage.
func (t *TranspositionTable) HitRate() float64 {
	lookups := t.lookups.Load()
	if lookups == 0 {
		return 0
	}
	return math.Round(float64(t.hits.Load())/float64(lookups)*10000) / 100
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TranspositionTable: entries: %d, stores: %d, lookups: %d, hits: %d, hit rate: %.2f %%",
		t.Len(), t.Stores(), t.Lookups(), t.Hits(), t.HitRate())
}
