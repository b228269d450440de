package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

type Result struct {
	Move     Move         `json:"move"`
	Found    bool         `json:"found"`
	Score    float64      `json:"score"`
	Depth    int          `json:"depth"`
	Nodes    int64        `json:"nodes"`
	FromBook bool         `json:"from_book"`
	Random   bool         `json:"random"`
	Stats    *SearchStats `json:"-"`
}

// NoLegalMove reports that the side to move has to pass.
func (r Result) NoLegalMove() bool {
	return !r.Found
}

// Engine picks moves for one player. It owns a transposition table and is
// not safe for concurrent use; run concurrent searches on separate engines.
type Engine struct {
	cfg    Config
	tt     *TranspositionTable
	logger *zap.Logger
	rng    *rand.Rand
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRand sets the source used by the random tier.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.TTSize > 0 {
		e.tt = NewTranspositionTable(uint64(cfg.TTSize), cfg.TTBuckets)
	}
	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

// BestMove chooses a move for color. When color has no legal move the
// result has Found == false and the caller should pass.
func (e *Engine) BestMove(b Board, color PlayerColor) (Result, error) {
	if !color.Valid() {
		return Result{Move: noMove}, invalidBoard("invalid player color %d", uint8(color))
	}
	if err := e.cfg.Validate(); err != nil {
		return Result{Move: noMove}, err
	}
	own, opp := b.sides(color)
	moves := legalMask(own, opp)
	if moves == 0 {
		return Result{Move: noMove}, nil
	}

	if e.cfg.Random {
		legal := movesFromMask(moves)
		return Result{Move: legal[e.rng.Intn(len(legal))], Found: true, Random: true}, nil
	}

	if e.cfg.UseOpeningBook {
		if m, ok := BookMove(b); ok && moves&bit(m.Row, m.Col) != 0 {
			e.logger.Debug("opening book hit", zap.Stringer("color", color), zap.Stringer("move", m))
			return Result{Move: m, Found: true, FromBook: true}, nil
		}
	}

	e.tt.Clear()
	stats := &SearchStats{Start: time.Now()}
	s := newSearcher(color, e.tt, stats)
	limit := e.cfg.depthLimit(b.CountEmpty())

	res := Result{Move: noMove, Stats: stats}
	prev := noMove
	for depth := 1; depth <= limit; depth++ {
		started := time.Now()
		move, score, ok := s.searchRoot(b, depth, prev)
		if !ok {
			break
		}
		stats.DepthDurations = append(stats.DepthDurations, time.Since(started))
		stats.CompletedDepths = depth
		res.Move = move
		res.Score = score
		res.Depth = depth
		res.Found = true
		prev = move
	}
	res.Nodes = stats.Nodes

	if e.cfg.LogSearchStats {
		logSearchStats(e.logger, color, res, e.tt)
	}
	return res, nil
}

// BestMove runs a one-off search with a fresh engine.
func BestMove(b Board, color PlayerColor, cfg Config) (Result, error) {
	return New(cfg).BestMove(b, color)
}
