package engine

import (
	"fmt"
	"math/bits"
	"strings"
)

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

// ParseMove reads algebraic notation such as "f5" (column letter, row number).
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Move{}, fmt.Errorf("invalid move notation %q", s)
	}
	return Move{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
}

func (m Move) IsValid() bool {
	return InBounds(m.Row, m.Col)
}

func (m Move) Equals(other Move) bool {
	return m.Row == other.Row && m.Col == other.Col
}

func (m Move) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

func (m Move) index() int {
	return m.Row*BoardSize + m.Col
}

func moveFromIndex(idx int) Move {
	return Move{Row: idx / BoardSize, Col: idx % BoardSize}
}

// movesFromMask lists the set bits of mask in ascending index order, which
// is row-major board order.
func movesFromMask(mask uint64) []Move {
	moves := make([]Move, 0, bits.OnesCount64(mask))
	for mask != 0 {
		idx := bits.TrailingZeros64(mask)
		moves = append(moves, moveFromIndex(idx))
		mask &= mask - 1
	}
	return moves
}
