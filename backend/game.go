package main

import (
	"errors"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
)

type Game struct {
	settings    GameSettings
	store       *ConfigStore
	logger      *zap.Logger
	state       GameState
	history     MoveHistory
	blackPlayer IPlayer
	whitePlayer IPlayer
	hintAI      *AIPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings, store *ConfigStore, logger *zap.Logger) Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := Game{store: store, logger: logger}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopAIPlayers()
	g.settings = settings
	g.state.Reset(uuid.NewString(), petname.Generate(2, "-"))
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

// SubmitHumanMove queues a move for the next Tick.
func (g *Game) SubmitHumanMove(move engine.Move) bool {
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok || g.state.Status != StatusRunning {
		return false
	}
	human.SetPendingMove(move)
	return true
}

// TryApplyMove plays move for the side to move and advances the turn,
// recording a pass when the opponent is stuck.
func (g *Game) TryApplyMove(move engine.Move) (bool, string) {
	return g.applyMove(move, false, engine.Result{})
}

func (g *Game) applyMove(move engine.Move, isAi bool, res engine.Result) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	mover := g.state.ToMove
	next, err := engine.ApplyMove(g.state.Board, move, mover)
	if err != nil {
		var illegal *engine.IllegalMoveError
		if errors.As(err, &illegal) {
			g.state.LastMessage = "Illegal move: " + illegal.Reason
		} else {
			g.state.LastMessage = err.Error()
		}
		return false, g.state.LastMessage
	}

	entry := HistoryEntry{
		Move:      move,
		Player:    mover,
		Flipped:   engine.Captures(g.state.Board, move, mover),
		ElapsedMs: float64(time.Since(g.turnStart).Milliseconds()),
		IsAi:      isAi,
		Depth:     res.Depth,
		FromBook:  res.FromBook,
	}
	g.state.Board = next
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.LastPassed = false
	g.state.LastMessage = ""
	g.history.Push(entry)
	g.logMovePlayed(entry, res)

	g.advanceTurn(mover)
	g.turnStart = time.Now()
	return true, ""
}

// advanceTurn hands the turn to the opponent, skips it when the opponent
// has no move, and ends the game when neither side can play.
func (g *Game) advanceTurn(mover engine.PlayerColor) {
	opponent := mover.Opponent()
	switch {
	case engine.HasLegalMove(g.state.Board, opponent):
		g.state.ToMove = opponent
	case engine.HasLegalMove(g.state.Board, mover):
		g.history.Push(HistoryEntry{Move: engine.NewMove(-1, -1), Player: opponent, Pass: true, IsAi: g.settings.typeFor(opponent) == PlayerAI})
		g.state.ToMove = mover
		g.state.LastPassed = true
		g.logger.Info("player passes", zap.String("game", g.state.Name), zap.Stringer("color", opponent))
	default:
		g.state.Status = finalStatus(g.state.Board)
		g.logResult()
	}
}

// Tick advances AI turns and queued human clicks. It reports whether the
// board changed.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	switch player := g.currentPlayer().(type) {
	case *HumanPlayer:
		if player.HasPendingMove() {
			applied, _ := g.TryApplyMove(player.TakePendingMove())
			return applied
		}
		return false
	case *AIPlayer:
		if player.HasMoveReady() {
			return g.applyAIMove(player.TakeMove())
		}
		if !player.IsThinking() {
			player.StartThinking(g.state.Board, g.state.ToMove)
		}
	}
	return false
}

func (g *Game) applyAIMove(move aiMove) bool {
	if move.Board != g.state.Board || move.Color != g.state.ToMove {
		return false
	}
	if move.Err != nil {
		g.state.LastMessage = "engine error: " + move.Err.Error()
		return false
	}
	if move.Result.NoLegalMove() {
		g.history.Push(HistoryEntry{Move: engine.NewMove(-1, -1), Player: move.Color, Pass: true, IsAi: true})
		g.advanceTurn(move.Color)
		return true
	}
	applied, reason := g.applyMove(move.Result.Move, true, move.Result)
	if !applied {
		g.logger.Warn("engine move rejected", zap.Stringer("move", move.Result.Move), zap.String("reason", reason))
	}
	return applied
}

// HintPlayer returns the AI used for suggestions to the side to move.
func (g *Game) HintPlayer() *AIPlayer {
	if g.hintAI == nil {
		g.hintAI = NewAIPlayer(g.store, g.logger)
	}
	return g.hintAI
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

// UpdateSettings swaps the seats without touching the board.
func (g *Game) UpdateSettings(settings GameSettings) {
	g.stopAIPlayers()
	g.settings = settings
	g.createPlayers()
	g.logMatchup()
}

// ResetForConfigChange drops searches started with the old config.
func (g *Game) ResetForConfigChange() {
	g.stopAIPlayers()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color engine.PlayerColor) IPlayer {
	if color == engine.PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) createPlayers() {
	g.blackPlayer = g.newPlayer(g.settings.BlackType)
	g.whitePlayer = g.newPlayer(g.settings.WhiteType)
}

func (g *Game) newPlayer(t PlayerType) IPlayer {
	if t == PlayerAI {
		return NewAIPlayer(g.store, g.logger)
	}
	return NewHumanPlayer()
}

func (g *Game) stopAIPlayers() {
	for _, p := range []IPlayer{g.blackPlayer, g.whitePlayer} {
		if ai, ok := p.(*AIPlayer); ok {
			ai.StopThinking()
		}
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	g.logger.Info("new matchup",
		zap.String("game", g.state.Name),
		zap.String("id", g.state.ID),
		zap.String("black", label(g.settings.BlackType)),
		zap.String("white", label(g.settings.WhiteType)),
		zap.String("difficulty", string(g.settings.Difficulty)),
	)
}

func (g *Game) logMovePlayed(entry HistoryEntry, res engine.Result) {
	black, white := g.state.Score()
	g.logger.Debug("move played",
		zap.String("game", g.state.Name),
		zap.Stringer("color", entry.Player),
		zap.Stringer("move", entry.Move),
		zap.Int("flipped", len(entry.Flipped)),
		zap.Bool("ai", entry.IsAi),
		zap.Int("depth", res.Depth),
		zap.Bool("book", res.FromBook),
		zap.Float64("elapsed_ms", entry.ElapsedMs),
		zap.Int("black", black),
		zap.Int("white", white),
	)
}

func (g *Game) logResult() {
	black, white := g.state.Score()
	g.logger.Info("game over",
		zap.String("game", g.state.Name),
		zap.String("status", statusToString(g.state.Status)),
		zap.Int("black", black),
		zap.Int("white", white),
	)
}
