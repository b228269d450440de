package engine

import (
	"fmt"
	"strings"
)

// openingLines are well known sequences from the standard start, in
// algebraic notation. Earlier lines take precedence when two lines reach the
// same position.
var openingLines = []string{
	"f5 d6 c3 d3 c4 f4 f6 f3", // tiger
	"f5 d6 c5 f4 e3 f6",       // rose
	"f5 d6 c4 d3 c3",
	"f5 d6 c5 f4 d3",
	"f5 f6 e6 f4 e3 c5", // parallel
	"f5 f4 e3 f6 d3",    // diagonal
}

type symmetry func(Move) Move

// startSymmetries map the starting position onto itself.
var startSymmetries = []symmetry{
	func(m Move) Move { return m },
	func(m Move) Move { return Move{Row: BoardSize - 1 - m.Row, Col: BoardSize - 1 - m.Col} },
	func(m Move) Move { return Move{Row: m.Col, Col: m.Row} },
	func(m Move) Move { return Move{Row: BoardSize - 1 - m.Col, Col: BoardSize - 1 - m.Row} },
}

var openingBook, openingBookErr = buildOpeningBook(openingLines)

// buildOpeningBook replays every line under each symmetry and records the
// reply for each position it passes through.
func buildOpeningBook(lines []string) (map[string]Move, error) {
	book := make(map[string]Move)
	for _, sym := range startSymmetries {
		for _, line := range lines {
			b := NewBoard()
			color := PlayerBlack
			for _, token := range strings.Fields(line) {
				m, err := ParseMove(token)
				if err != nil {
					return nil, fmt.Errorf("opening %q: %w", line, err)
				}
				m = sym(m)
				if !HasLegalMove(b, color) {
					color = color.Opponent()
				}
				key := b.String()
				if _, ok := book[key]; !ok {
					book[key] = m
				}
				b, err = ApplyMove(b, m, color)
				if err != nil {
					return nil, fmt.Errorf("opening %q: %w", line, err)
				}
				color = color.Opponent()
			}
		}
	}
	return book, nil
}

// BookMove looks up a known reply for b. The reply is not checked for
// legality.
func BookMove(b Board) (Move, bool) {
	m, ok := openingBook[b.String()]
	return m, ok
}

func BookSize() int {
	return len(openingBook)
}
