package engine

import "github.com/TrebbleBiscuit/crab-chess/internal/board"

// maxQuiescencePly and maxCheckPly bound ply guards A and B respectively;
// they are the "never exceed this depth no matter what" outer clamps the
// iteration-scaled guards are additionally capped at.
const (
	maxQuiescencePly = 40
	maxCheckPly      = 20
)

// quiesce extends search past the main recursion's horizon along noisy
// move sequences only, so the static evaluator is not trusted at a
// tactically unstable leaf. Only the moves GenerateCaptures yields are
// tried (captures, en passant, and promotions); quiet checking moves and
// non-capturing check evasions are not generated.
func quiesce(ctx *searchContext, pos *board.Position, ply int, alpha, beta Score, reps RepetitionMap) Score {
	if ply > ctx.stats.MaxPly {
		ctx.stats.MaxPly = ply
	}

	captures := pos.GenerateCaptures()
	forced := pos.InCheck()

	if captures.Len() == 0 {
		switch pos.Status() {
		case board.Checkmate:
			return Mate
		case board.Stalemate:
			return Stalemate
		}
		// No attacking moves but not terminal: fall through to stand-pat.
	}

	standPat := Evaluate(pos)
	ctx.stats.BoardsEvaluated++

	if !forced {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	// Ply guard A.
	guardA := 2 + ctx.currentIterativeDepth*6
	if guardA > maxQuiescencePly {
		guardA = maxQuiescencePly
	}
	if ply >= guardA {
		return standPat
	}

	bestSoFar := -SearchInf

	ordered := orderMoves(pos, captures.Slice(), nil)
	for _, sm := range ordered {
		mv := sm.move
		child := pos.Apply(mv)

		givesCheck := child.InCheck()
		isNoisy := pos.PieceAt(mv.To()) != board.NoPiece || mv.IsEnPassant() || mv.IsPromotion() || givesCheck

		if !givesCheck {
			if !forced && !isNoisy {
				continue
			}
		} else {
			// Ply guard B.
			guardB := ctx.currentIterativeDepth * 5
			if guardB > maxCheckPly {
				guardB = maxCheckPly
			}
			if ply >= guardB {
				if bestSoFar > standPat {
					return bestSoFar
				}
				return standPat
			}
		}

		childReps, isDraw := descend(reps, pos, mv, child)

		var score Score
		if isDraw {
			score = Stalemate
		} else {
			score = -quiesce(ctx, child, ply+1, -beta, -alpha, childReps)
		}
		ctx.stats.NodesSearched++

		if score >= beta {
			return score
		}
		if score > bestSoFar {
			bestSoFar = score
		}
		if score > alpha {
			alpha = score
		}
	}

	if bestSoFar > standPat {
		return bestSoFar
	}
	return standPat
}
