package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
)

// aiMove is a finished search together with the position it was computed
// for, so a stale result can be recognized after the game moved on.
type aiMove struct {
	Result  engine.Result
	Board   engine.Board
	Color   engine.PlayerColor
	Elapsed time.Duration
	Err     error
}

// AIPlayer runs engine searches off the request path. Searches cannot be
// interrupted: StopThinking only discards the result of the running one.
type AIPlayer struct {
	store  *ConfigStore
	logger *zap.Logger

	searchMu sync.Mutex
	engine   *engine.Engine

	moveMutex sync.Mutex
	readyMove aiMove
	thinking  atomic.Bool
	moveReady atomic.Bool
	version   atomic.Uint64
}

func NewAIPlayer(store *ConfigStore, logger *zap.Logger) *AIPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIPlayer{store: store, logger: logger}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove searches synchronously with the current config.
func (a *AIPlayer) ChooseMove(b engine.Board, color engine.PlayerColor) (engine.Result, error) {
	a.searchMu.Lock()
	defer a.searchMu.Unlock()
	return a.engineFor(a.store.Get()).BestMove(b, color)
}

// engineFor keeps the engine, and its table, while the config is unchanged.
// Callers hold searchMu.
func (a *AIPlayer) engineFor(cfg engine.Config) *engine.Engine {
	if a.engine == nil || a.engine.Config() != cfg {
		a.engine = engine.New(cfg, engine.WithLogger(a.logger))
	}
	return a.engine
}

func (a *AIPlayer) StartThinking(b engine.Board, color engine.PlayerColor) {
	if a.thinking.Load() {
		return
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	version := a.version.Add(1)
	cfg := a.store.Get()

	go func() {
		started := time.Now()
		a.searchMu.Lock()
		res, err := a.engineFor(cfg).BestMove(b, color)
		a.searchMu.Unlock()
		if a.version.Load() != version {
			return
		}
		if err != nil {
			a.logger.Error("engine search failed", zap.Stringer("color", color), zap.Error(err))
		}
		a.moveMutex.Lock()
		a.readyMove = aiMove{Result: res, Board: b, Color: color, Elapsed: time.Since(started), Err: err}
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

// StopThinking abandons the running search, if any.
func (a *AIPlayer) StopThinking() {
	a.version.Add(1)
	a.moveReady.Store(false)
	a.thinking.Store(false)
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() aiMove {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove
}
