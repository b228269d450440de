package engine

import (
	"math"
	"math/rand"
	"testing"
)

func mustParseMove(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	if err != nil {
		t.Fatalf("parse move %q: %v", s, err)
	}
	return m
}

func mustApply(t *testing.T, b Board, m Move, color PlayerColor) Board {
	t.Helper()
	next, err := ApplyMove(b, m, color)
	if err != nil {
		t.Fatalf("apply %s for %s: %v", m, color, err)
	}
	return next
}

// randomGame plays uniformly random legal moves from the start until at most
// stopEmpty cells are empty or the game ends. It returns the position and
// the side to move, which always has a legal move unless the game is over.
func randomGame(rng *rand.Rand, stopEmpty int) (Board, PlayerColor) {
	b := NewBoard()
	color := PlayerBlack
	for b.CountEmpty() > stopEmpty && !IsTerminal(b) {
		moves := LegalMoves(b, color)
		if len(moves) == 0 {
			color = color.Opponent()
			continue
		}
		next, err := ApplyMove(b, moves[rng.Intn(len(moves))], color)
		if err != nil {
			panic(err)
		}
		b = next
		color = color.Opponent()
	}
	if !IsTerminal(b) && !HasLegalMove(b, color) {
		color = color.Opponent()
	}
	return b, color
}

// referenceMinimax is plain minimax without pruning or caching.
func referenceMinimax(b Board, mover, root PlayerColor, depth int) float64 {
	if depth <= 0 || IsTerminal(b) {
		return Evaluate(b, root)
	}
	moves := LegalMoves(b, mover)
	if len(moves) == 0 {
		return referenceMinimax(b, mover.Opponent(), root, depth)
	}
	maximizing := mover == root
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, m := range moves {
		child, err := ApplyMove(b, m, mover)
		if err != nil {
			panic(err)
		}
		score := referenceMinimax(child, mover.Opponent(), root, depth-1)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}
