package engine

import "github.com/TrebbleBiscuit/crab-chess/internal/board"

// Bound classifies what a stored score actually guarantees.
type Bound uint8

const (
	Exact Bound = iota
	Upper
	Lower
)

// ttCapacity is fixed, not sized from a configured hash-table megabyte
// count: the table is a direct-mapped cache of a known shape, and 2^19
// slots is the capacity the search was tuned against.
const ttCapacity = 1 << 19

// Entry is one transposition table slot.
type Entry struct {
	Depth    int8
	Ply      uint16
	Score    Score
	Bound    Bound
	BestMove board.Move
}

var emptyEntry = Entry{BestMove: board.NoMove}

// TranspositionTable is a fixed-capacity, direct-mapped cache of subtree
// results keyed by Zobrist hash. It tolerates key collisions silently —
// a spurious hit only costs a reordering, never an illegal move, because
// any hinted best_move is re-validated by move generation before it is
// played.
type TranspositionTable struct {
	entries [ttCapacity]Entry
}

// NewTranspositionTable returns an empty table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{}
}

func (tt *TranspositionTable) slot(hash uint64) *Entry {
	return &tt.entries[hash&(ttCapacity-1)]
}

// Insert overwrites the slot for hash unconditionally.
func (tt *TranspositionTable) Insert(hash uint64, e Entry) {
	*tt.slot(hash) = e
}

// Probe returns the entry for hash if one is stored and its depth is at
// least requiredDepth; otherwise it reports a miss. A shallower stored
// entry is treated exactly like no entry at all.
func (tt *TranspositionTable) Probe(hash uint64, requiredDepth int) (Entry, bool) {
	e := tt.slot(hash)
	// Depth 0 only ever occurs in a slot nothing has written to — every
	// store path writes depth >= 1 (the end-of-node and root stores gate on
	// depth >= 2, the beta-cutoff store runs at any depth >= 1), so it
	// doubles as the empty-slot sentinel.
	if e.Depth == 0 || int(e.Depth) < requiredDepth {
		return emptyEntry, false
	}
	return *e, true
}

// Clear resets every slot, used on the UCI "ucinewgame" signal.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = emptyEntry
	}
}
