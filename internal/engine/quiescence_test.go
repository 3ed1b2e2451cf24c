package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

// TestQuiescence_SeesTheRecapture is spec.md scenario S4: a naive depth-1
// search would play Nxe5 because it looks like a free pawn, but quiescence
// must see Nxe5 Nxe5 recovering the piece and settle near equal.
func TestQuiescence_SeesTheRecapture(t *testing.T) {
	pos, err := board.ParseFEN("r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/2N2N2/PPPP1PPP/R1BQK2R w kq - 0 1")
	require.NoError(t, err)

	ctx := &searchContext{tt: NewTranspositionTable(), stats: &SearchStats{}, currentIterativeDepth: 1}
	score := quiesce(ctx, pos, 0, -SearchInf, SearchInf, RepetitionMap{})

	assert.InDelta(t, 0, score, 80, "quiescence must settle the capture/recapture exchange near equal")

	_, move := alphaBeta(ctx, pos, 1, 0, -SearchInf, SearchInf, nil, RepetitionMap{})
	assert.NotEqual(t, "f3e5", move.String(), "a depth-1 search must not hang a knight that quiescence would see recaptured")
}

func TestQuiesce_StandPatCutsOffWhenAlreadyWinning(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)

	ctx := &searchContext{tt: NewTranspositionTable(), stats: &SearchStats{}, currentIterativeDepth: 1}
	score := quiesce(ctx, pos, 0, -SearchInf, Score(100), RepetitionMap{})

	assert.GreaterOrEqual(t, score, Score(100), "stand-pat should cut off immediately once ahead of beta")
}

func TestChooseMove_RespectsTimeBudget(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable()

	start := time.Now()
	_, move := ChooseMove(tt, pos, []*board.Position{pos}, nil, 40, 100*time.Millisecond, nil)
	elapsed := time.Since(start)

	assert.NotEqual(t, board.NoMove, move)
	assert.Less(t, elapsed, 2*time.Second, "search must return within the budget plus one last subtree, per spec.md property 8")
}
