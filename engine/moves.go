package engine

import "math/bits"

const (
	fileA uint64 = 0x0101010101010101
	fileH uint64 = 0x8080808080808080
)

type shiftFunc func(uint64) uint64

// directions shift a whole mask one step. Column 0 is the low bit of each
// row byte, so eastward shifts must not wrap into file A and westward shifts
// must not wrap into file H.
var directions = [8]shiftFunc{
	func(x uint64) uint64 { return (x << 1) &^ fileA }, // E
	func(x uint64) uint64 { return (x >> 1) &^ fileH }, // W
	func(x uint64) uint64 { return x >> 8 },            // N
	func(x uint64) uint64 { return x << 8 },            // S
	func(x uint64) uint64 { return (x >> 7) &^ fileA }, // NE
	func(x uint64) uint64 { return (x >> 9) &^ fileH }, // NW
	func(x uint64) uint64 { return (x << 9) &^ fileA }, // SE
	func(x uint64) uint64 { return (x << 7) &^ fileH }, // SW
}

// legalMask returns every empty square that captures at least one run.
func legalMask(own, opp uint64) uint64 {
	empty := ^(own | opp)
	var moves uint64
	for _, shift := range directions {
		x := shift(own) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		x |= shift(x) & opp
		moves |= shift(x) & empty
	}
	return moves
}

// capturesFor returns the discs flipped by playing sq. Zero means the move is
// illegal.
func capturesFor(own, opp, sq uint64) uint64 {
	if sq == 0 || (own|opp)&sq != 0 {
		return 0
	}
	var flips uint64
	for _, shift := range directions {
		var run uint64
		x := shift(sq)
		for x&opp != 0 {
			run |= x
			x = shift(x)
		}
		if x&own != 0 {
			flips |= run
		}
	}
	return flips
}

// Captures lists the discs that m would flip for color, in row-major order.
func Captures(b Board, m Move, color PlayerColor) []Move {
	if !m.IsValid() || !color.Valid() {
		return nil
	}
	own, opp := b.sides(color)
	return movesFromMask(capturesFor(own, opp, bit(m.Row, m.Col)))
}

func LegalMoves(b Board, color PlayerColor) []Move {
	if !color.Valid() {
		return nil
	}
	own, opp := b.sides(color)
	return movesFromMask(legalMask(own, opp))
}

func HasLegalMove(b Board, color PlayerColor) bool {
	own, opp := b.sides(color)
	return legalMask(own, opp) != 0
}

func MobilityCount(b Board, color PlayerColor) int {
	own, opp := b.sides(color)
	return bits.OnesCount64(legalMask(own, opp))
}

// ApplyMove places a disc for color at m and flips every captured run.
func ApplyMove(b Board, m Move, color PlayerColor) (Board, error) {
	if !color.Valid() {
		return b, invalidBoard("invalid player color %d", uint8(color))
	}
	if !m.IsValid() {
		return b, &IllegalMoveError{Move: m, Color: color, Reason: "out of bounds"}
	}
	sq := bit(m.Row, m.Col)
	if (b.black|b.white)&sq != 0 {
		return b, &IllegalMoveError{Move: m, Color: color, Reason: "cell occupied"}
	}
	own, opp := b.sides(color)
	flips := capturesFor(own, opp, sq)
	if flips == 0 {
		return b, &IllegalMoveError{Move: m, Color: color, Reason: "captures nothing"}
	}
	return withSides(color, own|sq|flips, opp&^flips), nil
}

// play applies a move known to be legal.
func play(own, opp, sq uint64) (uint64, uint64) {
	flips := capturesFor(own, opp, sq)
	return own | sq | flips, opp &^ flips
}

func IsTerminal(b Board) bool {
	if b.empty() == 0 {
		return true
	}
	return legalMask(b.black, b.white) == 0 && legalMask(b.white, b.black) == 0
}

// IsLegal reports whether m is a legal move for color.
func IsLegal(b Board, m Move, color PlayerColor) bool {
	if !m.IsValid() || !color.Valid() {
		return false
	}
	own, opp := b.sides(color)
	return legalMask(own, opp)&bit(m.Row, m.Col) != 0
}
