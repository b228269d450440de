package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	GameName        string            `json:"game_name"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          engine.Config     `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	ScoreBlack      int               `json:"score_black"`
	ScoreWhite      int               `json:"score_white"`
	LegalMoves      []engine.Move     `json:"legal_moves"`
	LastMove        *engine.Move      `json:"last_move,omitempty"`
	LastPassed      bool              `json:"last_passed"`
	LastMessage     string            `json:"last_message,omitempty"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Difficulty string `json:"difficulty"`
	HumanColor string `json:"human_color"`
}

type startRequest struct {
	Difficulty string `json:"difficulty"`
	HumanColor string `json:"human_color"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type hintResponse struct {
	Move     engine.Move `json:"move"`
	Notation string      `json:"notation"`
	Player   int         `json:"player"`
	Found    bool        `json:"found"`
	Score    float64     `json:"score"`
	Depth    int         `json:"depth"`
	Nodes    int64       `json:"nodes"`
	FromBook bool        `json:"from_book"`
}

type historyEntryDTO struct {
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	Notation  string        `json:"notation,omitempty"`
	Player    int           `json:"player"`
	Pass      bool          `json:"pass"`
	Flipped   []engine.Move `json:"flipped"`
	ElapsedMs float64       `json:"elapsed_ms"`
	IsAi      bool          `json:"is_ai"`
	Depth     int           `json:"depth"`
	FromBook  bool          `json:"from_book"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   engine.Config   `json:"config"`
}

func main() {
	cfg, err := LoadAppConfig(os.Getenv("REVERSI_CONFIG"))
	if err != nil {
		bootLogger := buildLogger(true)
		bootLogger.Fatal("failed to load configuration", zap.Error(err))
	}
	logger := buildLogger(cfg.Development)
	defer func() { _ = logger.Sync() }()

	difficulty, _ := engine.ParseDifficulty(cfg.Game.Difficulty)
	seat, _ := humanSeatFromString(cfg.Game.HumanColor)
	store := NewConfigStore(cfg.Engine)
	controller := NewGameController(settingsFor(difficulty, seat), store, logger)
	hub := NewHub(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())
	go runTicker(ctx, controller, hub, time.Duration(cfg.TickMs)*time.Millisecond)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(controller, hub, logger),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Info("backend listening", zap.String("addr", cfg.Addr), zap.String("game", controller.State().Name))
	select {
	case <-sigCtx.Done():
		logger.Info("shutdown signal received", zap.Error(sigCtx.Err()))
	case err, ok := <-serverErrCh:
		if ok {
			logger.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Warn("forced close failed", zap.Error(closeErr))
		}
	}
}

func buildLogger(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}

// runTicker drives AI turns and pushes the new status after every move.
func runTicker(ctx context.Context, controller *GameController, hub *Hub, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if controller.Tick() {
				publishMove(controller, hub)
			}
		}
	}
}

func publishMove(controller *GameController, hub *Hub) {
	if entry, ok := controller.LatestHistoryEntry(); ok {
		hub.Publish(msgHistory, historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
	}
	hub.Publish(msgStatus, controllerStatus(controller))
}

func newRouter(controller *GameController, hub *Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload startRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		difficulty := controller.Settings().Difficulty
		if payload.Difficulty != "" {
			parsed, err := engine.ParseDifficulty(payload.Difficulty)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			difficulty = parsed
		}
		seat, err := humanSeatFromString(payload.HumanColor)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		controller.StartGame(settingsFor(difficulty, seat))
		status := controllerStatus(controller)
		logger.Info("game started", zap.String("game", status.GameName), zap.String("difficulty", string(difficulty)), zap.String("human", string(seat)))
		hub.Publish(msgReset, status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload moveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		applied, errMsg := controller.ApplyHumanMove(engine.NewMove(payload.Row, payload.Col))
		if !applied {
			writeError(w, http.StatusBadRequest, errMsg)
			return
		}
		publishMove(controller, hub)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		res, color, err := controller.Hint()
		if errors.Is(err, errGameNotRunning) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			logger.Error("hint search failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp := hintResponse{
			Move:     res.Move,
			Player:   playerToInt(color),
			Found:    res.Found,
			Score:    res.Score,
			Depth:    res.Depth,
			Nodes:    res.Nodes,
			FromBook: res.FromBook,
		}
		if res.Found {
			resp.Notation = res.Move.String()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.store.Get())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		cfg := controller.store.Get()
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		if err := controller.UpdateConfig(cfg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hub.Publish(msgSettings, settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   controller.store.Get(),
		})
		writeJSON(w, http.StatusOK, controller.store.Get())
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, logger, w, r)
	})

	return r
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	black, white := state.Score()
	status := StatusResponse{
		GameID:          state.ID,
		GameName:        state.Name,
		Settings:        settingsToDTO(controller.Settings()),
		Config:          controller.store.Get(),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		ScoreBlack:      black,
		ScoreWhite:      white,
		LegalMoves:      []engine.Move{},
		LastPassed:      state.LastPassed,
		LastMessage:     state.LastMessage,
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
	if state.Status == StatusRunning {
		status.LegalMoves = engine.LegalMoves(state.Board, state.ToMove)
	}
	if state.HasLastMove {
		last := state.LastMove
		status.LastMove = &last
	}
	return status
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	return GameSettingsDTO{
		Difficulty: string(settings.Difficulty),
		HumanColor: string(settings.seat()),
	}
}

func boardToSlice(board engine.Board) [][]int {
	cells := board.Cells()
	rows := make([][]int, len(cells))
	for r, line := range cells {
		rows[r] = make([]int, len(line))
		for c, cell := range line {
			rows[r][c] = int(cell)
		}
	}
	return rows
}

func playerToInt(player engine.PlayerColor) int {
	if player == engine.PlayerBlack {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	dto := historyEntryDTO{
		Row:       entry.Move.Row,
		Col:       entry.Move.Col,
		Player:    playerToInt(entry.Player),
		Pass:      entry.Pass,
		Flipped:   append([]engine.Move{}, entry.Flipped...),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
		FromBook:  entry.FromBook,
	}
	if !entry.Pass {
		dto.Notation = entry.Move.String()
	}
	return dto
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
