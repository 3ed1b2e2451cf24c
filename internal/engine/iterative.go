package engine

import (
	"time"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

// IterationInfo is what the driver reports back after every completed
// iterative-deepening pass, shaped directly for the UCI "info" line.
type IterationInfo struct {
	Depth        int
	SelDepth     int
	ScoreCP      Score
	ElapsedMS    int64
	BestMove     board.Move
	BestResponse board.Move
}

// rootMove is one candidate at the root, carrying the score it earned in
// the previous iteration so the next iteration can search best-first.
type rootMove struct {
	move  board.Move
	score int32
}

// ChooseMove runs iterative deepening from depth min(2, maxDepth) up to
// maxDepth (or until the deadline derived from timeBudget passes),
// re-ordering root moves after every pass and reporting one IterationInfo
// per pass via onIteration (a pass cut short by the deadline is reported
// too). It returns the score and move from
// the last iteration that produced one.
func ChooseMove(tt *TranspositionTable, pos *board.Position, historyPositions []*board.Position, historyMoves []board.Move, maxDepth int, timeBudget time.Duration, onIteration func(IterationInfo)) (Score, board.Move) {
	start := time.Now()
	deadline := start.Add(timeBudget)
	if timeBudget <= 0 {
		deadline = time.Time{}
	}

	baseReps := newRepetitionMapFromHistory(historyPositions, historyMoves)

	legal := pos.GenerateLegalMoves()
	ordered := orderMoves(pos, legal.Slice(), nil)
	roots := make([]rootMove, len(ordered))
	for i, sm := range ordered {
		roots[i] = rootMove{move: sm.move, score: sm.score}
	}

	cum := SearchStats{}

	var score Score
	bestMove := board.NoMove

	firstDepth := maxDepth
	if firstDepth > 2 {
		firstDepth = 2
	}

	for n := firstDepth; n <= maxDepth; n++ {
		iterStats := SearchStats{}
		ctx := &searchContext{tt: tt, stats: &iterStats, deadline: deadline, currentIterativeDepth: n}

		iterScore, iterMove, newRoots, bestResponse := topLevelSearch(ctx, pos, n, roots, baseReps)

		score = iterScore
		bestMove = iterMove
		roots = newRoots

		cum.Add(iterStats)

		if onIteration != nil {
			onIteration(IterationInfo{
				Depth:        n,
				SelDepth:     cum.MaxPly,
				ScoreCP:      score,
				ElapsedMS:    time.Since(start).Milliseconds(),
				BestMove:     bestMove,
				BestResponse: bestResponse,
			})
		}

		if n == maxDepth || ctx.timeUp() {
			break
		}
	}

	return score, bestMove
}

// topLevelSearch is the root's own search loop: it deliberately bypasses
// the transposition table for early-exit purposes (it needs to score every
// root move, not stop at the first TT hit) while still letting interior
// nodes use it. Returns the re-ordered root list for the next iteration.
func topLevelSearch(ctx *searchContext, pos *board.Position, depth int, order []rootMove, baseReps RepetitionMap) (Score, board.Move, []rootMove, board.Move) {
	alpha := -SearchInf
	beta := SearchInf

	bestMove := board.NoMove
	bestResponse := board.NoMove

	values := make([]rootMove, 0, len(order))

	for _, rm := range order {
		mv := rm.move
		child := pos.Apply(mv)

		childReps, isDraw := descend(baseReps, pos, mv, child)

		var evaluation Score
		var thisResponse board.Move

		if isDraw {
			evaluation, thisResponse = Stalemate, board.NoMove
		} else {
			alpha-- // mate-distance parity trick: the child sees alpha one lower; restored below.

			captureBonus := 0
			if pos.PieceAt(mv.To()) != board.NoPiece || mv.IsEnPassant() {
				captureBonus = 1
			}

			childScore, childResponse := alphaBeta(ctx, child, depth+captureBonus-1, 1, -beta, -alpha, []board.Move{bestResponse}, childReps)

			alpha++
			evaluation, thisResponse = -childScore, childResponse
		}

		values = append(values, rootMove{move: mv, score: int32(evaluation)})
		ctx.stats.NodesSearched++

		if ctx.timeUp() {
			if bestMove != board.NoMove {
				break
			}
		}

		if int32(evaluation) > alpha {
			alpha = Score(evaluation)
			bestMove = mv
			bestResponse = thisResponse
		}
	}

	sortRootMovesDescending(values)

	pruned := make([]rootMove, 0, len(values))
	for i, rm := range values {
		if i > 0 && alpha > -900000 && rm.score <= -900000 {
			continue
		}
		if depth >= 4 && Score(rm.score)+750 < alpha {
			continue
		}
		pruned = append(pruned, rm)
	}

	if depth >= ttDepthThreshold && !ctx.timeUp() {
		ctx.stats.TTStored++
		ctx.tt.Insert(pos.Hash, Entry{
			Depth:    int8(depth),
			Ply:      0,
			Score:    alpha,
			Bound:    Exact,
			BestMove: bestMove,
		})
	}

	return alpha, bestMove, pruned, bestResponse
}

func sortRootMovesDescending(moves []rootMove) {
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && moves[j-1].score < moves[j].score {
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
}
