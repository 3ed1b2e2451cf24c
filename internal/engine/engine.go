// Package engine implements the search core: iterative-deepening
// alpha-beta with quiescence, transposition caching, and a tapered static
// evaluator, wrapped in a value that owns the transposition table across
// calls the way a long-lived UCI process needs to.
package engine

import (
	"time"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
	crablog "github.com/TrebbleBiscuit/crab-chess/internal/log"
)

var logger = crablog.For("engine")

// Engine owns the one piece of state that survives across moves within a
// game: the transposition table. Everything else search-scoped (the
// RepetitionMap, SearchStats, alpha/beta windows) is created fresh on
// entry to ChooseMove and discarded on return.
type Engine struct {
	tt      *TranspositionTable
	options Options
}

// New constructs an Engine with an empty transposition table.
func New() *Engine {
	return &Engine{
		tt:      NewTranspositionTable(),
		options: DefaultOptions(),
	}
}

// SetOptions replaces the engine's configurable knobs.
func (e *Engine) SetOptions(o Options) {
	e.options = o
}

// NewGame clears the transposition table. This is the core's reaction to
// the UCI "ucinewgame" signal — nothing about a finished game should leak
// into the next one.
func (e *Engine) NewGame() {
	logger.Debug("clearing transposition table for new game")
	e.tt.Clear()
}

// ChooseMove selects a move for pos given the game history that led to it
// (historyPositions[0] is the position before the first historyMoves[0]
// was played; historyPositions has one more element than historyMoves),
// bounded by maxDepth plies and timeBudget wall-clock time. onIteration,
// if non-nil, is invoked once per iterative-deepening pass, including a
// pass cut short by the deadline — the UCI front end uses it to print "info" lines as the search runs.
func (e *Engine) ChooseMove(pos *board.Position, historyPositions []*board.Position, historyMoves []board.Move, maxDepth int, timeBudget time.Duration, onIteration func(IterationInfo)) (Score, board.Move) {
	if maxDepth < 1 {
		panic("engine: ChooseMove requires maxDepth >= 1")
	}
	switch pos.Status() {
	case board.Checkmate, board.Stalemate:
		panic("engine: ChooseMove called on a terminal position")
	}

	if maxDepth > e.options.MaxDepth {
		maxDepth = e.options.MaxDepth
	}

	logger.Debugf("choosing move for %s (maxDepth=%d timeBudget=%s)", pos.ToFEN(), maxDepth, timeBudget)

	score, move := ChooseMove(e.tt, pos, historyPositions, historyMoves, maxDepth, timeBudget, onIteration)

	logger.Debugf("chose %s score=%d", move, score)
	return score, move
}
