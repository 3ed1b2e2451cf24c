package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

func TestTranspositionTable_MissOnEmptySlot(t *testing.T) {
	tt := NewTranspositionTable()
	_, ok := tt.Probe(0xdeadbeef, 1)
	assert.False(t, ok)
}

func TestTranspositionTable_HitAtOrAboveStoredDepth(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(12345)
	tt.Insert(hash, Entry{Depth: 4, Score: 120, Bound: Exact, BestMove: board.NewMove(board.E2, board.E4)})

	entry, ok := tt.Probe(hash, 4)
	require.True(t, ok)
	assert.Equal(t, Score(120), entry.Score)
	assert.Equal(t, Exact, entry.Bound)

	_, ok = tt.Probe(hash, 2)
	assert.True(t, ok, "a stored depth-4 entry also satisfies a shallower requirement")
}

func TestTranspositionTable_MissBelowStoredDepth(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(777)
	tt.Insert(hash, Entry{Depth: 2, Score: 50, Bound: Lower, BestMove: board.NoMove})

	_, ok := tt.Probe(hash, 4)
	assert.False(t, ok, "a shallower stored entry must miss a deeper requirement")
}

func TestTranspositionTable_InsertOverwritesUnconditionally(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(99)
	tt.Insert(hash, Entry{Depth: 6, Score: 300, Bound: Exact})
	tt.Insert(hash, Entry{Depth: 2, Score: -10, Bound: Upper})

	entry, ok := tt.Probe(hash, 2)
	require.True(t, ok)
	assert.Equal(t, Score(-10), entry.Score)
	assert.Equal(t, Upper, entry.Bound)
}

func TestTranspositionTable_Clear(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(55)
	tt.Insert(hash, Entry{Depth: 3, Score: 10, Bound: Exact})
	tt.Clear()

	_, ok := tt.Probe(hash, 1)
	assert.False(t, ok)
}
