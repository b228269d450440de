// Package engine implements move generation, evaluation and search for
// 8x8 Reversi.
package engine

import (
	"fmt"
	"math/bits"
	"strings"
)

const BoardSize = 8

type Cell uint8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

type PlayerColor uint8

const (
	PlayerBlack PlayerColor = iota + 1
	PlayerWhite
)

// Board is an immutable 8x8 position stored as one bitmask per color.
// Bit index is row*8+col.
type Board struct {
	black uint64
	white uint64
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	b.white |= bit(3, 3) | bit(4, 4)
	b.black |= bit(3, 4) | bit(4, 3)
	return b
}

// BoardFromCells builds a board from a row-major grid.
func BoardFromCells(cells [][]Cell) (Board, error) {
	if len(cells) != BoardSize {
		return Board{}, invalidBoard("expected %d rows, got %d", BoardSize, len(cells))
	}
	var b Board
	for row, line := range cells {
		if len(line) != BoardSize {
			return Board{}, invalidBoard("row %d has %d cells, expected %d", row, len(line), BoardSize)
		}
		for col, cell := range line {
			switch cell {
			case CellEmpty:
			case CellBlack:
				b.black |= bit(row, col)
			case CellWhite:
				b.white |= bit(row, col)
			default:
				return Board{}, invalidBoard("invalid cell state %d at (%d,%d)", cell, row, col)
			}
		}
	}
	return b, nil
}

// ParseBoard reads the 64-digit serialization produced by Board.String.
func ParseBoard(s string) (Board, error) {
	if len(s) != BoardSize*BoardSize {
		return Board{}, invalidBoard("expected %d characters, got %d", BoardSize*BoardSize, len(s))
	}
	var b Board
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			b.black |= uint64(1) << i
		case '2':
			b.white |= uint64(1) << i
		default:
			return Board{}, invalidBoard("invalid cell %q at index %d", s[i], i)
		}
	}
	return b, nil
}

func (b Board) At(row, col int) Cell {
	if !InBounds(row, col) {
		return CellEmpty
	}
	mask := bit(row, col)
	switch {
	case b.black&mask != 0:
		return CellBlack
	case b.white&mask != 0:
		return CellWhite
	default:
		return CellEmpty
	}
}

func (b Board) Count(color PlayerColor) int {
	return bits.OnesCount64(b.discs(color))
}

func (b Board) CountEmpty() int {
	return bits.OnesCount64(b.empty())
}

// Cells returns a fresh row-major grid of the position.
func (b Board) Cells() [][]Cell {
	cells := make([][]Cell, BoardSize)
	for row := range cells {
		cells[row] = make([]Cell, BoardSize)
		for col := range cells[row] {
			cells[row][col] = b.At(row, col)
		}
	}
	return cells
}

// String is the canonical serialization: 64 digits in row-major order,
// 0 empty, 1 black, 2 white.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)
	for i := 0; i < BoardSize*BoardSize; i++ {
		mask := uint64(1) << i
		switch {
		case b.black&mask != 0:
			sb.WriteByte('1')
		case b.white&mask != 0:
			sb.WriteByte('2')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Pretty renders the board as an 8-line grid for logs.
func (b Board) Pretty() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < BoardSize; row++ {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < BoardSize; col++ {
			switch b.At(row, col) {
			case CellBlack:
				sb.WriteString(" X")
			case CellWhite:
				sb.WriteString(" O")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b Board) discs(color PlayerColor) uint64 {
	if color == PlayerBlack {
		return b.black
	}
	return b.white
}

func (b Board) empty() uint64 {
	return ^(b.black | b.white)
}

func (b Board) sides(color PlayerColor) (own, opp uint64) {
	if color == PlayerBlack {
		return b.black, b.white
	}
	return b.white, b.black
}

func withSides(color PlayerColor, own, opp uint64) Board {
	if color == PlayerBlack {
		return Board{black: own, white: opp}
	}
	return Board{black: opp, white: own}
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func (p PlayerColor) String() string {
	switch p {
	case PlayerBlack:
		return "Black"
	case PlayerWhite:
		return "White"
	default:
		return fmt.Sprintf("PlayerColor(%d)", uint8(p))
	}
}

func (p PlayerColor) Opponent() PlayerColor {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) Valid() bool {
	return p == PlayerBlack || p == PlayerWhite
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellBlack:
		return PlayerBlack, nil
	case CellWhite:
		return PlayerWhite, nil
	default:
		return 0, fmt.Errorf("empty cell has no player")
	}
}

func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < BoardSize && col < BoardSize
}

func bit(row, col int) uint64 {
	return uint64(1) << (row*BoardSize + col)
}
