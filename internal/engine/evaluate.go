package engine

import "github.com/TrebbleBiscuit/crab-chess/internal/board"

// Evaluate scores pos from the perspective of the side to move: positive
// means the side to move is better off. It is a single pass over every
// piece on the board — material, piece-square tables, a tapered king/pawn
// treatment driven by how much non-pawn material remains, pawn-structure
// bonuses, and a king-distance mop-up term when the game has thinned out.
func Evaluate(pos *board.Position) Score {
	whitePieces := pos.Occupied[board.White]
	blackPieces := pos.Occupied[board.Black]
	whitePawns := whitePieces & pos.Pieces[board.White][board.Pawn]
	blackPawns := blackPieces & pos.Pieces[board.Black][board.Pawn]
	whiteMajors := whitePieces &^ whitePawns
	blackMajors := blackPieces &^ blackPawns
	allMajors := whiteMajors | blackMajors

	endgameFactor := 10 - clampInt(allMajors.PopCount(), 4, 10) // 0..6

	var total int32

	for pt := board.Pawn; pt <= board.King; pt++ {
		bb := pos.Pieces[board.White][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			total += evaluatePiece(pos, pt, sq, board.White, endgameFactor, blackPawns, whitePawns)
		}
		bb = pos.Pieces[board.Black][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			total -= evaluatePiece(pos, pt, sq, board.Black, endgameFactor, whitePawns, blackPawns)
		}
	}

	if allMajors.PopCount() < 5 {
		whiteKing := pos.KingSquare[board.White]
		blackKing := pos.KingSquare[board.Black]
		dist := chebyshevDistance(whiteKing, blackKing)
		if total > 300 {
			total += 5 * int32(10-dist)
		} else if total < -300 {
			total -= 5 * int32(10-dist)
		}
	}

	if pos.SideToMove == board.Black {
		return -total
	}
	return total
}

// evaluatePiece returns the contribution of one piece, already oriented so
// that it should be added (never subtracted) for the color it belongs to;
// the caller negates for Black.
func evaluatePiece(pos *board.Position, pt board.PieceType, sq board.Square, color board.Color, endgameFactor int, enemyPawns, friendlyPawns board.Bitboard) int32 {
	idx := int(sq)
	colorIdx := idx
	if color == board.White {
		colorIdx = 63 - idx
	}

	switch pt {
	case board.Pawn:
		return interpolatedPawnPST(endgameFactor, colorIdx) + 100 + pawnBonusValue(sq, color, enemyPawns, friendlyPawns)
	case board.Knight:
		return int32(knightPST[colorIdx]) + 320
	case board.Bishop:
		return int32(bishopPST[colorIdx]) + 330
	case board.Rook:
		return int32(rookPST[colorIdx]) + 500
	case board.Queen:
		return int32(queenPST[colorIdx]) + 900
	case board.King:
		return evaluateKingPosition(colorIdx, pos, sq, color, endgameFactor)
	default:
		return 0
	}
}

func interpolatedPawnPST(endgameFactor int, idx int) int32 {
	switch {
	case endgameFactor == 0:
		return int32(pawnPST[idx])
	case endgameFactor == 6:
		return int32(pawnPSTEndgame[idx])
	default:
		return int32((6-endgameFactor)*pawnPST[idx]+endgameFactor*pawnPSTEndgame[idx]) / 6
	}
}

func evaluateKingPosition(colorIdx int, pos *board.Position, sq board.Square, color board.Color, endgameFactor int) int32 {
	switch {
	case endgameFactor == 0:
		return int32(kingPST[colorIdx]) + kingSafety(pos, sq, color)
	case endgameFactor == 6:
		return endgameKingModifier(sq, endgameFactor)
	default:
		divisor := endgameFactor - 1
		if divisor < 1 {
			divisor = 1
		}
		return int32(kingPST[colorIdx])/int32(divisor) + kingSafety(pos, sq, color) + endgameKingModifier(sq, endgameFactor)
	}
}

// kingSafety pretends a rook and a bishop stand on the king's square and
// counts how many squares they could sweep through the current occupancy;
// more swept squares means more ways to attack the king.
func kingSafety(pos *board.Position, sq board.Square, kingColor board.Color) int32 {
	enemyCount := pos.Occupied[kingColor.Other()].PopCount()
	safetyFactor := clampInt(enemyCount, 5, 15) - 5 // 0..10
	if safetyFactor == 0 {
		return 0
	}

	blockers := pos.AllOccupied
	safety := 5 - board.RookAttacks(sq, blockers).PopCount() - board.BishopAttacks(sq, blockers).PopCount()
	return int32(safety * safetyFactor)
}

func endgameKingModifier(sq board.Square, endgameFactor int) int32 {
	if endgameFactor == 0 {
		return 0
	}
	return int32((3-distanceFromCenter[sq])*3*endgameFactor)
}

// pawnBonusValue adds the passed-pawn, doubled-pawn, and isolated-pawn
// adjustments for a single pawn.
func pawnBonusValue(sq board.Square, pawnColor board.Color, enemyPawns, friendlyPawns board.Bitboard) int32 {
	var bonus int32

	if isPassedPawn(enemyPawns, sq, pawnColor) {
		rank := sq.Rank()
		var squaresToPromotion int
		if pawnColor == board.White {
			squaresToPromotion = 7 - rank
		} else {
			squaresToPromotion = rank
		}
		bonus += int32(passedPawnBonus[squaresToPromotion])
	}

	file := sq.File()
	leftFile := file - 1
	if leftFile < 0 {
		leftFile = 0
	}
	rightFile := file + 1
	if rightFile > 7 {
		rightFile = 7
	}
	fileMaskCenter := board.FileMask[file]
	fileMaskSides := board.FileMask[leftFile] | board.FileMask[rightFile]

	switch (friendlyPawns & fileMaskCenter).PopCount() {
	case 0, 1:
	case 2:
		bonus -= 10
	default:
		bonus -= 20
	}

	switch (friendlyPawns & fileMaskSides).PopCount() {
	case 0:
		bonus -= 20
	case 1:
		bonus -= 6
	}

	return bonus
}

func isPassedPawn(enemyPawns board.Bitboard, sq board.Square, pawnColor board.Color) bool {
	return enemyPawns&passedPawnMask(sq, pawnColor) == 0
}

// passedPawnMask covers the pawn's own file and both adjacent files, on
// every rank ahead of it (toward promotion) for pawnColor.
func passedPawnMask(sq board.Square, pawnColor board.Color) board.Bitboard {
	file := sq.File()
	leftFile := file - 1
	if leftFile < 0 {
		leftFile = 0
	}
	rightFile := file + 1
	if rightFile > 7 {
		rightFile = 7
	}
	tripleFileMask := board.FileMask[file] | board.FileMask[leftFile] | board.FileMask[rightFile]

	rank := sq.Rank()
	if pawnColor == board.White {
		return rankMaskAbove(rank) & tripleFileMask
	}
	return rankMaskBelow(rank) & tripleFileMask
}

func rankMaskAbove(rank int) board.Bitboard {
	var mask board.Bitboard = ^board.Bitboard(0)
	return mask << uint(8*(rank+1))
}

func rankMaskBelow(rank int) board.Bitboard {
	var mask board.Bitboard = ^board.Bitboard(0)
	return mask >> uint(8*(8-rank))
}

func chebyshevDistance(a, b board.Square) int {
	df := absInt(a.File() - b.File())
	dr := absInt(a.Rank() - b.Rank())
	if df > dr {
		return df
	}
	return dr
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// distanceFromCenter is the file-distance plus rank-distance from each
// square to the central 2x2 block (d4/e4/d5/e5): 0 at the center, growing
// outward, 6 in the corners.
var distanceFromCenter = computeDistanceFromCenter()

func computeDistanceFromCenter() [64]int {
	var out [64]int
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		df := minInt(absInt(file-3), absInt(file-4))
		dr := minInt(absInt(rank-3), absInt(rank-4))
		out[sq] = df + dr
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// passedPawnBonus[squares_to_promotion] — 1 square away is the biggest
// bonus; 0 is unused (a pawn on the promotion rank has already promoted).
var passedPawnBonus = [8]int{0, 150, 90, 50, 20, 15, 15, 15}

var pawnPSTEndgame = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	50, 50, 50, 50, 50, 50, 50, 50,
	30, 30, 30, 30, 30, 30, 30, 30,
	20, 20, 20, 20, 20, 20, 20, 20,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	78, 83, 86, 73, 102, 82, 85, 90,
	7, 29, 21, 44, 40, 31, 44, 7,
	-18, 16, -2, 15, 14, 0, 15, -13,
	-26, 3, 10, 9, 6, 1, 0, -23,
	-22, 9, 5, -11, -10, -2, 3, -19,
	-31, 8, -7, -37, -36, -14, 3, -31,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-66, -53, -75, -75, -10, -55, -58, -70,
	-3, -6, 100, -36, 4, 62, -4, -14,
	10, 67, 1, 74, 73, 27, 62, -2,
	24, 24, 45, 37, 33, 41, 25, 17,
	-1, 5, 31, 21, 22, 35, 2, 0,
	-18, 10, 13, 22, 18, 15, 11, -14,
	-23, -15, 2, 0, 2, 0, -23, -20,
	-74, -23, -26, -24, -19, -35, -22, -69,
}

var bishopPST = [64]int{
	-59, -78, -82, -76, -23, -107, -37, -50,
	-11, 20, 35, -42, -39, 31, 2, -22,
	-9, 39, -32, 41, 52, -10, 28, -14,
	25, 17, 20, 34, 26, 25, 15, 10,
	13, 10, 17, 23, 17, 16, 0, 7,
	14, 25, 24, 15, 8, 25, 20, 15,
	19, 20, 11, 6, 7, 6, 20, 16,
	-7, 2, -15, -12, -14, -15, -10, -10,
}

var rookPST = [64]int{
	35, 29, 33, 4, 37, 33, 56, 50,
	55, 29, 56, 67, 55, 62, 34, 60,
	19, 35, 28, 33, 45, 27, 25, 15,
	0, 5, 16, 13, 18, -4, -9, -6,
	-28, -35, -16, -21, -13, -29, -46, -30,
	-42, -28, -42, -25, -25, -35, -26, -46,
	-53, -38, -31, -26, -29, -43, -44, -53,
	-30, -24, -18, 5, -2, -18, -31, -32,
}

var queenPST = [64]int{
	6, 1, -8, -104, 69, 24, 88, 26,
	14, 32, 60, -10, 20, 76, 57, 24,
	-2, 43, 32, 60, 72, 63, 43, 2,
	1, -16, 22, 17, 25, 20, -13, -6,
	-14, -15, -2, -5, -1, -10, -20, -22,
	-30, -6, -13, -11, -16, -11, -16, -27,
	-36, -18, 0, -19, -15, -15, -21, -38,
	-39, -30, -31, -13, -31, -36, -34, -42,
}

var kingPST = [64]int{
	4, 54, 47, -99, -99, 60, 83, -62,
	-32, 10, 55, 56, 56, 55, 10, 3,
	-62, 12, -57, 44, -67, 28, 37, -31,
	-55, 50, 11, -4, -19, 13, 0, -49,
	-55, -43, -52, -28, -51, -47, -8, -50,
	-47, -42, -43, -79, -64, -32, -29, -32,
	-4, 3, -14, -50, -57, -18, 13, 4,
	17, 30, -3, -14, 6, -1, 40, 18,
}
