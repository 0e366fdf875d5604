package alphabeta

import (
	"testing"

	"github.com/matryer/is"
)

func TestTTablePutLookup(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Reset(0)

	tt.Put(9409641586937047728, 4, 12.5)
	e, ok := tt.Lookup(9409641586937047728, 4)
	is.True(ok)
	is.Equal(e.Score, 12.5)
	is.Equal(e.Depth, 4)
	is.Equal(e.Bound, BoundExact)

	_, ok = tt.Lookup(9409641586937047728, 5)
	is.True(!ok)
	_, ok = tt.Lookup(9409641586937047729, 4)
	is.True(!ok)

	is.Equal(tt.Stores(), uint64(1))
	is.Equal(tt.Lookups(), uint64(3))
	is.Equal(tt.Hits(), uint64(1))
}

func TestTTableKeyIsStructural(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	// hash+depth is the same for both of these.
	tt.Put(100, 3, 1)
	tt.Put(101, 2, 2)

	e, ok := tt.Lookup(100, 3)
	is.True(ok)
	is.Equal(e.Score, 1.0)
	e, ok = tt.Lookup(101, 2)
	is.True(ok)
	is.Equal(e.Score, 2.0)
	is.Equal(tt.Len(), 2)
}

func TestTTablePutOverwrites(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Store(TableEntry{Hash: 7, Depth: 2, Score: -3, Bound: BoundUpper})
	tt.Put(7, 2, 4)

	e, ok := tt.Lookup(7, 2)
	is.True(ok)
	is.Equal(e.Score, 4.0)
	is.Equal(e.Bound, BoundExact)
	is.Equal(tt.Len(), 1)
}

func TestTTableClone(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Put(1, 1, 1)
	tt.Lookup(1, 1)

	c := tt.Clone()
	is.Equal(c.Len(), 1)
	is.Equal(c.Lookups(), uint64(0))

	c.Put(2, 1, 2)
	tt.Put(3, 1, 3)
	_, ok := tt.Lookup(2, 1)
	is.True(!ok)
	_, ok = c.Lookup(3, 1)
	is.True(!ok)
}

func TestTTableMerge(t *testing.T) {
	is := is.New(t)
	root := NewTranspositionTable()
	root.Put(1, 1, 1)

	a := root.Clone()
	a.Put(2, 1, 2)
	a.Store(TableEntry{Hash: 1, Depth: 1, Score: 9, Bound: BoundLower})

	b := root.Clone()
	b.Put(3, 2, 3)
	b.Store(TableEntry{Hash: 4, Depth: 2, Score: -1, Bound: BoundUpper})

	root.Merge(a, b, nil, root)
	is.Equal(root.Len(), 4)

	e, _ := root.Lookup(1, 1)
	// a bound never replaces an exact score
	is.Equal(e.Score, 1.0)
	is.Equal(e.Bound, BoundExact)
	e, _ = root.Lookup(3, 2)
	is.Equal(e.Score, 3.0)
	e, _ = root.Lookup(4, 2)
	is.Equal(e.Bound, BoundUpper)
	is.Equal(root.Stores(), uint64(5))
}

func TestTTableReset(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	tt.Put(1, 1, 1)
	tt.Lookup(1, 1)
	is.Equal(tt.HitRate(), 100.0)

	tt.Reset(0.0001)
	is.Equal(tt.Len(), 0)
	is.Equal(tt.Stores(), uint64(0))
	is.Equal(tt.HitRate(), 0.0)
	is.Equal(tt.String(), "TranspositionTable: entries: 0, stores: 0, lookups: 0, hits: 0, hit rate: 0.00 %")
}
