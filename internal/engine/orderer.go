package engine

import (
	"sort"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
)

// pieceOrderValue is the MVV/LVA table used only for move ordering — a
// cheap stand-in for the evaluator's own material weights, kept separate so
// ordering tuning never perturbs Evaluate.
var pieceOrderValue = [7]int32{
	board.Pawn:   100,
	board.Knight: 330,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   5000,
}

// scoredMove pairs a move with its ordering heuristic score.
type scoredMove struct {
	move  board.Move
	score int32
}

// orderMoves scores every move in moves by cheap heuristics (hint bonus,
// queen-promotion bonus, MVV/LVA) and returns them sorted best-first. Ties
// keep their original relative order.
func orderMoves(pos *board.Position, moves []board.Move, hints []board.Move) []scoredMove {
	out := make([]scoredMove, len(moves))
	for i, mv := range moves {
		out[i] = scoredMove{move: mv, score: scoreMove(pos, mv, hints)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score > out[j].score
	})
	return out
}

func scoreMove(pos *board.Position, mv board.Move, hints []board.Move) int32 {
	var score int32

	for _, h := range hints {
		if h != board.NoMove && h == mv {
			score += 10000
			break
		}
	}

	if mv.IsPromotion() && mv.Promotion() == board.Queen {
		score += 900
	}

	if victim := pos.PieceAt(mv.To()); victim != board.NoPiece {
		attacker := pos.PieceAt(mv.From())
		score += pieceOrderValue[victim.Type()] - pieceOrderValue[attacker.Type()]/2
	}

	return score
}
