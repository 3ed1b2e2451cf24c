package engine

import "github.com/TrebbleBiscuit/crab-chess/internal/board"

// RepetitionMap counts, for each position hash encountered on the current
// search path (including the game history that led to the root), how many
// times it has occurred since the last irreversible move.
type RepetitionMap map[uint64]uint32

// newRepetitionMapFromHistory seeds a RepetitionMap from the game's move
// history, the way the top-level search does before its first iteration:
// replay every historical move, clearing the map whenever that move was a
// capture (captures are irreversible, so positions before one can never
// recur).
func newRepetitionMapFromHistory(history []*board.Position, moves []board.Move) RepetitionMap {
	m := make(RepetitionMap)
	for i, mv := range moves {
		before := history[i]
		if before.PieceAt(mv.To()) != board.NoPiece || mv.IsEnPassant() {
			clear(m)
		}
		after := history[i+1]
		m[after.Hash]++
	}
	return m
}

// descend returns the RepetitionMap visible to a child reached by applying
// mv from pos, and whether that child is a draw by three-fold repetition.
// The copy-on-write semantics (copy the parent's map, mutate the copy) is
// the literal behavior of the original search; a single shared map with
// push/pop on unwind is an equivalent implementation as long as the
// path-local view survives recursion.
func descend(parent RepetitionMap, pos *board.Position, mv board.Move, child *board.Position) (RepetitionMap, bool) {
	var next RepetitionMap
	if pos.PieceAt(mv.To()) != board.NoPiece || mv.IsEnPassant() {
		next = make(RepetitionMap)
	} else {
		next = make(RepetitionMap, len(parent))
		for k, v := range parent {
			next[k] = v
		}
	}
	next[child.Hash]++
	return next, next[child.Hash] >= 3
}
