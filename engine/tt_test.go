package engine

import "testing"

func TestTTStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1<<8, 2)
	b := NewBoard()
	if !tt.Store(b, PlayerBlack, 3, 42, TTExact, NewMove(4, 5)) {
		t.Fatalf("expected store to succeed")
	}
	entry, ok := tt.Probe(b, PlayerBlack)
	if !ok || entry.Depth != 3 || entry.Score != 42 || entry.Flag != TTExact || entry.BestMove != NewMove(4, 5) {
		t.Fatalf("unexpected entry %+v ok=%v", entry, ok)
	}
	if _, ok := tt.Probe(b, PlayerWhite); ok {
		t.Fatalf("expected side to move to be part of the key")
	}
}

func TestTTKeepsDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(1<<8, 2)
	b := NewBoard()
	tt.Store(b, PlayerBlack, 5, 10, TTLower, NewMove(2, 3))
	if tt.Store(b, PlayerBlack, 3, 20, TTExact, NewMove(3, 2)) {
		t.Fatalf("expected shallower result to be rejected")
	}
	entry, _ := tt.Probe(b, PlayerBlack)
	if entry.Depth != 5 || entry.Score != 10 {
		t.Fatalf("expected depth 5 entry to survive, got %+v", entry)
	}
	if !tt.Store(b, PlayerBlack, 5, 30, TTExact, NewMove(3, 2)) {
		t.Fatalf("expected equal depth result to replace")
	}
	entry, _ = tt.Probe(b, PlayerBlack)
	if entry.Score != 30 || entry.Flag != TTExact {
		t.Fatalf("expected replaced entry, got %+v", entry)
	}
}

func TestTTReplacesShallowestInFullBucket(t *testing.T) {
	tt := NewTranspositionTable(1, 2)
	a := NewBoard()
	b := mustApply(t, a, NewMove(4, 5), PlayerBlack)
	c := mustApply(t, a, NewMove(2, 3), PlayerBlack)

	tt.Store(a, PlayerBlack, 3, 1, TTExact, NewMove(4, 5))
	tt.Store(b, PlayerWhite, 1, 2, TTExact, NewMove(5, 3))
	tt.Store(c, PlayerWhite, 2, 3, TTExact, NewMove(2, 2))

	if _, ok := tt.Probe(a, PlayerBlack); !ok {
		t.Fatalf("expected deepest entry to survive")
	}
	if _, ok := tt.Probe(b, PlayerWhite); ok {
		t.Fatalf("expected shallowest entry to be evicted")
	}
	if _, ok := tt.Probe(c, PlayerWhite); !ok {
		t.Fatalf("expected new entry to be stored")
	}
}

func TestTTClearStartsNewGeneration(t *testing.T) {
	tt := NewTranspositionTable(1<<4, 1)
	b := NewBoard()
	tt.Store(b, PlayerBlack, 2, 1, TTExact, NewMove(4, 5))
	gen := tt.Generation()
	tt.Clear()
	if tt.Generation() != gen+1 {
		t.Fatalf("expected generation %d, got %d", gen+1, tt.Generation())
	}
	if _, ok := tt.Probe(b, PlayerBlack); ok {
		t.Fatalf("expected cleared table to miss")
	}
	if tt.Count() != 0 {
		t.Fatalf("expected no live entries after clear, got %d", tt.Count())
	}
	if !tt.Store(b, PlayerBlack, 1, 5, TTUpper, NewMove(4, 5)) {
		t.Fatalf("expected stale slot to be reusable even for a shallower result")
	}
}

func TestTTGenerationWrapWipesSlots(t *testing.T) {
	tt := NewTranspositionTable(16, 1)
	tt.Store(NewBoard(), PlayerBlack, 1, 1, TTExact, NewMove(4, 5))
	tt.gen = ^uint32(0)
	tt.Clear()
	if got := tt.Generation(); got != 1 {
		t.Fatalf("expected generation to restart at 1, got %d", got)
	}
	for i := range tt.entries {
		if tt.entries[i].Valid {
			t.Fatalf("expected slot %d to be wiped", i)
		}
	}
}

func TestTTNilTableIsDisabled(t *testing.T) {
	var tt *TranspositionTable
	if NewTranspositionTable(0, 4) != nil {
		t.Fatalf("expected zero size to disable the table")
	}
	tt.Clear()
	if tt.Store(NewBoard(), PlayerBlack, 1, 1, TTExact, NewMove(4, 5)) {
		t.Fatalf("expected nil table to drop stores")
	}
	if _, ok := tt.Probe(NewBoard(), PlayerBlack); ok {
		t.Fatalf("expected nil table to miss")
	}
	if tt.Capacity() != 0 || tt.Count() != 0 {
		t.Fatalf("expected nil table to be empty")
	}
}

func TestTTSizeRoundsToPowerOfTwo(t *testing.T) {
	tt := NewTranspositionTable(100, 3)
	if tt.Capacity() != 128*3 {
		t.Fatalf("expected capacity %d, got %d", 128*3, tt.Capacity())
	}
}

func TestTTFlagFor(t *testing.T) {
	if ttFlagFor(-5, -5, 10) != TTUpper {
		t.Fatalf("expected upper bound at alpha")
	}
	if ttFlagFor(10, -5, 10) != TTLower {
		t.Fatalf("expected lower bound at beta")
	}
	if ttFlagFor(3, -5, 10) != TTExact {
		t.Fatalf("expected exact inside window")
	}
}
