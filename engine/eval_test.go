package engine

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestEvaluateTerminalIsExactMargin(t *testing.T) {
	full, err := ParseBoard(strings.Repeat("1", 40) + strings.Repeat("2", 24))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := Evaluate(full, PlayerBlack); got != 16*ExactScoreFactor {
		t.Fatalf("expected %d, got %v", 16*ExactScoreFactor, got)
	}
	if got := Evaluate(full, PlayerWhite); got != -16*ExactScoreFactor {
		t.Fatalf("expected %d, got %v", -16*ExactScoreFactor, got)
	}

	// Both sides stuck with empties left still counts as final.
	stuck, err := ParseBoard("1" + strings.Repeat("0", 62) + "1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := Evaluate(stuck, PlayerWhite); got != -2*ExactScoreFactor {
		t.Fatalf("expected %d, got %v", -2*ExactScoreFactor, got)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		b, _ := randomGame(rng, rng.Intn(55))
		if Evaluate(b, PlayerBlack) != Evaluate(b, PlayerBlack) {
			t.Fatalf("expected repeated evaluation to match")
		}
	}
}

func TestEvaluateIsAntisymmetricApartFromParity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		b, _ := randomGame(rng, rng.Intn(60))
		sum := Evaluate(b, PlayerBlack) + Evaluate(b, PlayerWhite)
		want := 0.0
		if !IsTerminal(b) {
			empty := b.CountEmpty()
			parity := WeightsFor(PhaseFor(empty)).Parity * parityOddSign
			if empty%2 == 0 {
				parity = -parity
			}
			want = 2 * parity
		}
		if math.Abs(sum-want) > 1e-6 {
			t.Fatalf("expected black+white evaluation %v, got %v on\n%s", want, sum, b.Pretty())
		}
	}
}

func TestHeuristicStaysBelowExactScores(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 300; i++ {
		b, _ := randomGame(rng, rng.Intn(60))
		if IsTerminal(b) {
			continue
		}
		if score := Evaluate(b, PlayerBlack); math.Abs(score) >= ExactScoreFactor {
			t.Fatalf("expected heuristic below %d, got %v", ExactScoreFactor, score)
		}
	}
}

func TestPhaseBoundaries(t *testing.T) {
	cases := map[int]Phase{60: PhaseEarly, 41: PhaseEarly, 40: PhaseMid, 13: PhaseMid, 12: PhaseLate, 1: PhaseLate}
	for empty, want := range cases {
		if got := PhaseFor(empty); got != want {
			t.Fatalf("expected %s for %d empty, got %s", want, empty, got)
		}
	}
}

func TestMobilityPenalizesForcedPass(t *testing.T) {
	if got := mobilityScore(0, 3, 100); got != -125 {
		t.Fatalf("expected -125, got %v", got)
	}
	if got := mobilityScore(3, 0, 100); got != 125 {
		t.Fatalf("expected 125, got %v", got)
	}
	if got := mobilityScore(2, 2, 100); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestCornerOutweighsXSquare(t *testing.T) {
	base := NewBoard()
	corner := withSides(PlayerBlack, base.black|bit(0, 0), base.white)
	xSquare := withSides(PlayerBlack, base.black|bit(1, 1), base.white)
	if Evaluate(corner, PlayerBlack) <= Evaluate(xSquare, PlayerBlack) {
		t.Fatalf("expected corner disc to score above X-square disc")
	}
}
