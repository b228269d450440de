package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *GameController) {
	t.Helper()
	store := NewConfigStore(engine.DifficultyEasy.Config())
	controller := NewGameController(settingsFor(engine.DifficultyEasy, seatBoth), store, nil)
	server := httptest.NewServer(newRouter(controller, NewHub(nil), zap.NewNop()))
	t.Cleanup(server.Close)
	return server, controller
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestPingEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	var body map[string]bool
	if code := doJSON(t, http.MethodGet, server.URL+"/api/ping", nil, &body); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !body["ok"] {
		t.Fatalf("expected ok response")
	}
}

func TestStartAndMoveEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	var status StatusResponse
	code := doJSON(t, http.MethodPost, server.URL+"/api/start", startRequest{Difficulty: "easy", HumanColor: "both"}, &status)
	if code != http.StatusOK {
		t.Fatalf("expected 200 from start, got %d", code)
	}
	if status.Status != "running" || status.NextPlayer != 1 {
		t.Fatalf("unexpected status after start %+v", status)
	}
	if len(status.LegalMoves) != 4 {
		t.Fatalf("expected 4 opening moves, got %d", len(status.LegalMoves))
	}
	if status.ScoreBlack != 2 || status.ScoreWhite != 2 {
		t.Fatalf("expected 2-2 score, got %d-%d", status.ScoreBlack, status.ScoreWhite)
	}
	if status.GameName == "" || status.Settings.HumanColor != "both" {
		t.Fatalf("unexpected game identity %+v", status.Settings)
	}

	code = doJSON(t, http.MethodPost, server.URL+"/api/move", moveRequest{Row: 2, Col: 3}, &status)
	if code != http.StatusOK {
		t.Fatalf("expected 200 from move, got %d", code)
	}
	if status.NextPlayer != 2 || status.ScoreBlack != 4 || status.ScoreWhite != 1 {
		t.Fatalf("unexpected status after d3 %+v", status)
	}
	if len(status.History) != 1 || status.History[0].Notation != "d3" {
		t.Fatalf("expected d3 in history, got %+v", status.History)
	}
	if status.LastMove == nil || *status.LastMove != engine.NewMove(2, 3) {
		t.Fatalf("expected last move d3")
	}

	var errBody map[string]string
	code = doJSON(t, http.MethodPost, server.URL+"/api/move", moveRequest{Row: 3, Col: 3}, &errBody)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for occupied cell, got %d", code)
	}
	if !strings.Contains(errBody["error"], "cell occupied") {
		t.Fatalf("unexpected error body %v", errBody)
	}
}

func TestStartRejectsUnknownDifficulty(t *testing.T) {
	server, _ := newTestServer(t)
	code := doJSON(t, http.MethodPost, server.URL+"/api/start", startRequest{Difficulty: "impossible"}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestHintEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	if code := doJSON(t, http.MethodGet, server.URL+"/api/hint", nil, nil); code != http.StatusConflict {
		t.Fatalf("expected 409 before start, got %d", code)
	}
	doJSON(t, http.MethodPost, server.URL+"/api/start", startRequest{Difficulty: "easy", HumanColor: "both"}, nil)

	var hint hintResponse
	if code := doJSON(t, http.MethodGet, server.URL+"/api/hint", nil, &hint); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !hint.Found || hint.Player != 1 {
		t.Fatalf("expected a hint for black, got %+v", hint)
	}
	if !engine.IsLegal(engine.NewBoard(), hint.Move, engine.PlayerBlack) {
		t.Fatalf("expected legal hint, got %s", hint.Notation)
	}
}

func TestConfigEndpoints(t *testing.T) {
	server, controller := newTestServer(t)

	var cfg engine.Config
	if code := doJSON(t, http.MethodGet, server.URL+"/api/config", nil, &cfg); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if cfg != controller.store.Get() {
		t.Fatalf("expected current config, got %+v", cfg)
	}

	if code := doJSON(t, http.MethodPost, server.URL+"/api/config", map[string]int{"depth": 3}, &cfg); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if cfg.Depth != 3 || controller.store.Get().Depth != 3 {
		t.Fatalf("expected depth 3, got %d", cfg.Depth)
	}

	if code := doJSON(t, http.MethodPost, server.URL+"/api/config", map[string]int{"depth": 0}, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for depth 0, got %d", code)
	}
	if controller.store.Get().Depth != 3 {
		t.Fatalf("expected rejected config to leave depth unchanged")
	}
}
