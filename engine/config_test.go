package engine

import "testing"

func TestDifficultyDepths(t *testing.T) {
	want := map[Difficulty]int{
		DifficultyEasy:   2,
		DifficultyMedium: 4,
		DifficultyHard:   6,
		DifficultyExpert: 8,
	}
	for d, depth := range want {
		cfg := d.Config()
		if cfg.Depth != depth || cfg.Random || !cfg.UseOpeningBook || cfg.EndgameEmpty != DefaultEndgameEmpty {
			t.Fatalf("unexpected config for %s: %+v", d, cfg)
		}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected %s config to validate: %v", d, err)
		}
	}
	beginner := DifficultyBeginner.Config()
	if !beginner.Random || beginner.UseOpeningBook {
		t.Fatalf("expected beginner to play randomly without the book: %+v", beginner)
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	if err != nil || d != DifficultyHard {
		t.Fatalf("expected hard, got %q err=%v", d, err)
	}
	if _, err := ParseDifficulty("grandmaster"); err == nil {
		t.Fatalf("expected unknown difficulty to fail")
	}
}

func TestDepthLimit(t *testing.T) {
	cfg := Config{Depth: 4, EndgameEmpty: 12}
	cases := []struct {
		empty int
		want  int
	}{
		{empty: 40, want: 4},
		{empty: 13, want: 4},
		{empty: 12, want: 12},
		{empty: 3, want: 3},
	}
	for _, tc := range cases {
		if got := cfg.depthLimit(tc.empty); got != tc.want {
			t.Fatalf("expected limit %d for %d empty, got %d", tc.want, tc.empty, got)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	bad := []Config{
		{Depth: 0},
		{Depth: 65},
		{Depth: 4, EndgameEmpty: -1},
		{Depth: 4, TTSize: -1},
		{Depth: 4, TTBuckets: -2},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected %+v to fail validation", cfg)
		}
	}
}
