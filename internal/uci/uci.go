// Package uci implements the Universal Chess Interface protocol loop that
// drives internal/engine. It owns stdin/stdout, command parsing, and
// time-control interpretation — none of which the search core is allowed
// to know about (SPEC_FULL.md §6.2).
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/TrebbleBiscuit/crab-chess/internal/board"
	"github.com/TrebbleBiscuit/crab-chess/internal/engine"
	crablog "github.com/TrebbleBiscuit/crab-chess/internal/log"
)

var logger = crablog.For("uci")

const engineName = "crab-chess"
const engineAuthor = "TrebbleBiscuit"

// defaultMovesToGo is how many moves we assume remain when the GUI gives a
// clock but no "movestogo" count.
const defaultMovesToGo = 30

// moveOverheadMS is shaved off every time allocation to leave room for
// process/GUI round-trip latency.
const moveOverheadMS = 50

// UCI is the protocol front end. It holds the current game position, the
// full history needed to seed repetition detection, and the engine it
// drives.
type UCI struct {
	eng *engine.Engine

	position         *board.Position
	historyPositions []*board.Position
	historyMoves     []board.Move

	out io.Writer
}

// New creates a UCI handler wrapping eng, writing replies to out.
func New(eng *engine.Engine, out io.Writer) *UCI {
	u := &UCI{eng: eng, out: out}
	u.resetToStartpos()
	return u
}

func (u *UCI) resetToStartpos() {
	u.position = board.NewPosition()
	u.historyPositions = []*board.Position{u.position}
	u.historyMoves = nil
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// Run reads commands from in until "quit" or EOF.
func (u *UCI) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.printf("readyok\n")
		case "ucinewgame":
			u.eng.NewGame()
			u.resetToStartpos()
		case "position":
			if err := u.handlePosition(args); err != nil {
				logger.Warningf("position: %v", err)
				u.printf("info string %v\n", err)
			}
		case "go":
			u.handleGo(args)
		case "stop":
			// Cooperative cancellation happens via deadline polling inside
			// the search itself (SPEC_FULL.md §5); there is no in-flight
			// search to interrupt out of band in a single-threaded core.
		case "quit":
			return
		case "d":
			u.printf("%s\n", u.position.String())
		}
	}
}

func (u *UCI) handleUCI() {
	u.printf("id name %s\n", engineName)
	u.printf("id author %s\n", engineAuthor)
	u.printf("uciok\n")
}

// handlePosition implements "position [fen <fen>|startpos] moves ...".
func (u *UCI) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing startpos/fen")
	}

	idx := 0
	switch args[0] {
	case "startpos":
		u.resetToStartpos()
		idx = 1
	case "fen":
		fenParts := args[1:]
		movesAt := len(fenParts)
		for i, f := range fenParts {
			if f == "moves" {
				movesAt = i
				break
			}
		}
		fen := strings.Join(fenParts[:movesAt], " ")
		pos, err := board.ParseFEN(fen)
		if err != nil {
			return errors.Wrapf(err, "position: invalid fen %q", fen)
		}
		u.position = pos
		u.historyPositions = []*board.Position{u.position}
		u.historyMoves = nil
		idx = 1 + movesAt
	default:
		return errors.Errorf("position: unexpected token %q", args[0])
	}

	if idx < len(args) && args[idx] == "moves" {
		for _, mvStr := range args[idx+1:] {
			mv, err := board.ParseMove(mvStr, u.position)
			if err != nil {
				return errors.Wrapf(err, "position: invalid move %q", mvStr)
			}
			u.position = u.position.Apply(mv)
			u.historyMoves = append(u.historyMoves, mv)
			u.historyPositions = append(u.historyPositions, u.position)
		}
	}

	return nil
}

// handleGo implements "go [depth N] [movetime N] [wtime N btime N winc N
// binc N] [infinite]".
func (u *UCI) handleGo(args []string) {
	maxDepth := 0 // 0 means "no explicit cap"; resolved below.
	moveTimeMS := -1
	wtime, btime, winc, binc := -1, -1, -1, -1
	movesToGo := defaultMovesToGo
	infinite := false

	for i := 0; i < len(args); i++ {
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}
		switch args[i] {
		case "depth":
			maxDepth, _ = strconv.Atoi(next())
		case "movetime":
			moveTimeMS, _ = strconv.Atoi(next())
		case "wtime":
			wtime, _ = strconv.Atoi(next())
		case "btime":
			btime, _ = strconv.Atoi(next())
		case "winc":
			winc, _ = strconv.Atoi(next())
		case "binc":
			binc, _ = strconv.Atoi(next())
		case "movestogo":
			movesToGo, _ = strconv.Atoi(next())
		case "infinite":
			infinite = true
		}
	}

	if maxDepth <= 0 {
		maxDepth = 40
	}

	timeBudget := resolveTimeBudget(u.position.SideToMove, moveTimeMS, wtime, btime, winc, binc, movesToGo, infinite)

	switch u.position.Status() {
	case board.Checkmate, board.Stalemate:
		u.printf("bestmove 0000\n")
		return
	}

	_, best := u.eng.ChooseMove(u.position, u.historyPositions, u.historyMoves, maxDepth, timeBudget, func(info engine.IterationInfo) {
		u.printf("info depth %d seldepth %d score cp %d time %d pv %s %s\n",
			info.Depth, info.SelDepth, info.ScoreCP, info.ElapsedMS,
			info.BestMove, pvResponseString(info.BestResponse))
	})

	u.printf("bestmove %s\n", best)
}

func pvResponseString(mv board.Move) string {
	if mv == board.NoMove {
		return ""
	}
	return mv.String()
}

// resolveTimeBudget turns UCI time-control arguments into a single
// wall-clock budget for this move, grounded on the classic
// "remaining/movesToGo - overhead" allocation.
func resolveTimeBudget(side board.Color, moveTimeMS, wtime, btime, winc, binc, movesToGo int, infinite bool) time.Duration {
	if infinite {
		return 0
	}
	if moveTimeMS > 0 {
		return time.Duration(moveTimeMS) * time.Millisecond
	}

	remaining, inc := wtime, winc
	if side == board.Black {
		remaining, inc = btime, binc
	}
	if remaining <= 0 {
		return 0
	}
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}

	allotted := remaining/movesToGo - moveOverheadMS
	if allotted < 0 {
		allotted = 0
	}
	allotted += inc

	return time.Duration(allotted) * time.Millisecond
}
