package main

import (
	"errors"
	"sync"

	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
)

var errGameNotRunning = errors.New("game not running")

// GameController serializes access to the single hosted game.
type GameController struct {
	mu    sync.Mutex
	game  Game
	store *ConfigStore
}

func NewGameController(settings GameSettings, store *ConfigStore, logger *zap.Logger) *GameController {
	return &GameController{game: NewGame(settings, store, logger), store: store}
}

func (gc *GameController) OnCellClicked(move engine.Move) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *GameController) ApplyHumanMove(move engine.Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History().Last()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

// StartGame resets the board and switches the engine to the game's
// difficulty.
func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.store.ApplyDifficulty(settings.Difficulty)
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) UpdateSettings(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.UpdateSettings(settings)
}

func (gc *GameController) UpdateConfig(cfg engine.Config) error {
	if err := gc.store.Update(cfg); err != nil {
		return err
	}
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.ResetForConfigChange()
	return nil
}

// Hint searches for the side to move without holding the game lock.
func (gc *GameController) Hint() (engine.Result, engine.PlayerColor, error) {
	gc.mu.Lock()
	state := gc.game.State()
	hintAI := gc.game.HintPlayer()
	gc.mu.Unlock()
	if state.Status != StatusRunning {
		return engine.Result{}, state.ToMove, errGameNotRunning
	}
	res, err := hintAI.ChooseMove(state.Board, state.ToMove)
	return res, state.ToMove, err
}
