package engine

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyBeginner Difficulty = "beginner"
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyExpert   Difficulty = "expert"
)

// DefaultEndgameEmpty is the empty-cell count at or below which the search
// runs to the end of the game.
const DefaultEndgameEmpty = 12

const maxSearchDepth = BoardSize * BoardSize

// Config controls one engine. Random skips book and search and plays a
// uniformly random legal move.
type Config struct {
	Depth          int  `json:"depth" mapstructure:"depth"`
	EndgameEmpty   int  `json:"endgame_empty" mapstructure:"endgame_empty"`
	UseOpeningBook bool `json:"use_opening_book" mapstructure:"use_opening_book"`
	Random         bool `json:"random" mapstructure:"random"`
	TTSize         int  `json:"tt_size" mapstructure:"tt_size"`
	TTBuckets      int  `json:"tt_buckets" mapstructure:"tt_buckets"`
	LogSearchStats bool `json:"log_search_stats" mapstructure:"log_search_stats"`
}

func DefaultConfig() Config {
	return DifficultyMedium.Config()
}

func Difficulties() []Difficulty {
	return []Difficulty{
		DifficultyBeginner,
		DifficultyEasy,
		DifficultyMedium,
		DifficultyHard,
		DifficultyExpert,
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Config returns the engine settings for a tier. Unknown tiers fall back to
// medium.
func (d Difficulty) Config() Config {
	cfg := Config{
		EndgameEmpty:   DefaultEndgameEmpty,
		UseOpeningBook: true,
		TTSize:         1 << 14,
		TTBuckets:      4,
	}
	switch d {
	case DifficultyBeginner:
		cfg.Depth = 1
		cfg.Random = true
		cfg.UseOpeningBook = false
	case DifficultyEasy:
		cfg.Depth = 2
	case DifficultyHard:
		cfg.Depth = 6
	case DifficultyExpert:
		cfg.Depth = 8
		cfg.TTSize = 1 << 16
	default:
		cfg.Depth = 4
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > maxSearchDepth {
		return fmt.Errorf("depth must be between 1 and %d, got %d", maxSearchDepth, c.Depth)
	}
	if c.EndgameEmpty < 0 || c.EndgameEmpty > maxSearchDepth {
		return fmt.Errorf("endgame_empty must be between 0 and %d, got %d", maxSearchDepth, c.EndgameEmpty)
	}
	if c.TTSize < 0 {
		return fmt.Errorf("tt_size must not be negative")
	}
	if c.TTBuckets < 0 {
		return fmt.Errorf("tt_buckets must not be negative")
	}
	return nil
}

// depthLimit raises the base depth to a full solve once few enough empty
// cells remain. Every move fills a cell, so a depth of empty already reaches
// the end of the game.
func (c Config) depthLimit(empty int) int {
	limit := c.Depth
	if empty <= c.EndgameEmpty && empty > limit {
		limit = empty
	}
	if limit > empty {
		limit = empty
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}
