package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

// TestChooseMove_FindsMateInOne is spec.md scenario S1: white has Ra1-a8#
// available and the search must return it with a mate-band score.
func TestChooseMove_FindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("7k/6pp/8/8/8/8/6PP/R5K1 w - - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable()
	score, move := ChooseMove(tt, pos, []*board.Position{pos}, nil, 3, time.Second, nil)

	assert.Equal(t, "a1a8", move.String())
	assert.GreaterOrEqual(t, score, Mate+2)
}

// TestChooseMove_AvoidsStalemateWhenWinning is spec.md scenario S2: with a
// lone king against king and queen, a stalemating queen move must lose out
// to a winning, non-stalemating one.
func TestChooseMove_AvoidsStalemateWhenWinning(t *testing.T) {
	// Black king cornered on a8; Qe8 mates at once but Qe5 stalemates.
	pos, err := board.ParseFEN("k7/8/1K6/1Q6/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable()
	_, move := ChooseMove(tt, pos, []*board.Position{pos}, nil, 3, time.Second, nil)

	after := pos.Apply(move)
	assert.NotEqual(t, board.Stalemate, after.Status(), "must never walk into a stalemate while holding a winning position")
}

// TestChooseMove_TranspositionTableSpeedsUpRepeatSearch is spec.md scenario
// S6: re-running the same search with a warm TT must be meaningfully
// faster than the cold run.
func TestChooseMove_TranspositionTableSpeedsUpRepeatSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-sensitive, skipped under -short")
	}

	pos, err := board.ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable()

	start := time.Now()
	ChooseMove(tt, pos, []*board.Position{pos}, nil, 5, 10*time.Second, nil)
	cold := time.Since(start)

	start = time.Now()
	ChooseMove(tt, pos, []*board.Position{pos}, nil, 5, 10*time.Second, nil)
	warm := time.Since(start)

	assert.Less(t, warm, cold, "a warm transposition table must search the same position faster")
}
