package engine

import (
	"time"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

// ttDepthThreshold is the minimum remaining depth at which a node's result
// is worth a transposition table slot; shallow results churn the table
// without saving much work later.
const ttDepthThreshold = 2

// searchContext carries the state that is shared read/write across one
// entire iterative-deepening pass (the transposition table persists across
// passes too, but is threaded in from the Engine that owns it).
type searchContext struct {
	tt                    *TranspositionTable
	stats                 *SearchStats
	deadline              time.Time
	currentIterativeDepth int
}

func (c *searchContext) timeUp() bool {
	return !c.deadline.IsZero() && !time.Now().Before(c.deadline)
}

// alphaBeta is the negamax core: fail-soft alpha-beta with transposition
// probing/storing, a check extension at the search horizon, and
// mate-distance adjustment so shorter forced mates always outrank longer
// ones.
func alphaBeta(ctx *searchContext, pos *board.Position, depth, ply int, alpha, beta Score, hints []board.Move, reps RepetitionMap) (Score, board.Move) {
	switch pos.Status() {
	case board.Stalemate:
		return Stalemate, board.NoMove
	case board.Checkmate:
		return Mate, board.NoMove
	}

	if depth == 0 {
		if pos.InCheck() {
			depth++
		} else {
			return quiesce(ctx, pos, ply+1, alpha, beta, reps), board.NoMove
		}
	}

	bestMove := board.NoMove
	bestScore := Score(-999999998)

	if entry, ok := ctx.tt.Probe(pos.Hash, depth); ok {
		ctx.stats.TTHits++
		switch entry.Bound {
		case Upper:
			ctx.stats.TTUpperHits++
			if entry.Score < beta {
				return entry.Score, entry.BestMove
			}
		case Exact:
			ctx.stats.TTExactHits++
			return entry.Score, entry.BestMove
		case Lower:
			ctx.stats.TTLowerHits++
			if entry.Score > alpha {
				alpha = entry.Score
				bestMove = entry.BestMove
				bestScore = entry.Score
			}
		}
	}

	thisBound := Upper

	legal := pos.GenerateLegalMoves()
	ordered := orderMoves(pos, legal.Slice(), hints)

	bestResponse := board.NoMove

	for _, sm := range ordered {
		mv := sm.move
		child := pos.Apply(mv)

		childReps, isDraw := descend(reps, pos, mv, child)

		var childScore Score
		var subResponse board.Move
		if isDraw {
			childScore, subResponse = Stalemate, board.NoMove
		} else {
			childScore, subResponse = alphaBeta(ctx, child, depth-1, ply+1, -beta, -alpha, []board.Move{bestResponse}, childReps)
		}

		eval := adjustMateDistance(childScore)
		ctx.stats.NodesSearched++

		if eval >= beta {
			if !ctx.timeUp() {
				ctx.stats.TTStored++
				ctx.tt.Insert(pos.Hash, Entry{
					Depth:    int8(depth),
					Ply:      uint16(ply),
					Score:    eval,
					Bound:    Lower,
					BestMove: mv,
				})
			}
			return eval, mv
		}

		if eval > alpha {
			alpha = eval
			bestScore = eval
			bestMove = mv
			bestResponse = subResponse
			thisBound = Exact
		} else if eval > bestScore {
			bestScore = eval
			bestMove = mv
			bestResponse = subResponse
		}

		if ctx.timeUp() {
			break
		}
	}

	if depth >= ttDepthThreshold && !ctx.timeUp() {
		ctx.stats.TTStored++
		ctx.tt.Insert(pos.Hash, Entry{
			Depth:    int8(depth),
			Ply:      uint16(ply),
			Score:    bestScore,
			Bound:    thisBound,
			BestMove: bestMove,
		})
	}

	return bestScore, bestMove
}
