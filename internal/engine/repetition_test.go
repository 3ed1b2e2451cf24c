package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

// TestDescend_ThirdOccurrenceIsADraw forces the same position to recur three
// times via a knight shuffle (Nb1-c3-b1-c3-b1...) and checks that the third
// occurrence is flagged as a repetition draw, matching S3.
func TestDescend_ThirdOccurrenceIsADraw(t *testing.T) {
	pos := board.NewPosition()
	reps := RepetitionMap{pos.Hash: 1} // the starting position's first occurrence

	shuffle := []string{"b1c3", "b8c6", "c3b1", "c6b8", "b1c3", "b8c6", "c3b1", "c6b8"}

	sawDraw := false
	for _, mvStr := range shuffle {
		mv, err := board.ParseMove(mvStr, pos)
		require.NoError(t, err)
		child := pos.Apply(mv)
		var isDraw bool
		reps, isDraw = descend(reps, pos, mv, child)
		if isDraw {
			sawDraw = true
		}
		pos = child
	}

	assert.True(t, sawDraw, "shuffling back to the same position three times should trip repetition")
}

func TestDescend_CaptureClearsTheMap(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	reps := RepetitionMap{pos.Hash: 5} // pretend this position has "occurred" many times already

	mv, err := board.ParseMove("e4d5", pos)
	require.NoError(t, err)
	child := pos.Apply(mv)

	next, isDraw := descend(reps, pos, mv, child)
	assert.False(t, isDraw)
	assert.Len(t, next, 1, "a capture clears everything but the position it produced")
}

func TestNewRepetitionMapFromHistory_SeedsPositionAfterMove(t *testing.T) {
	start := board.NewPosition()
	mv, err := board.ParseMove("g1f3", start)
	require.NoError(t, err)
	after := start.Apply(mv)

	m := newRepetitionMapFromHistory([]*board.Position{start, after}, []board.Move{mv})
	assert.Equal(t, uint32(1), m[after.Hash])
}
