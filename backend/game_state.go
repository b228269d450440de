package main

import (
	"github.com/khodemetamir/Reversi/engine"
)

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

type GameState struct {
	ID          string
	Name        string
	Board       engine.Board
	ToMove      engine.PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    engine.Move
	LastPassed  bool
	LastMessage string
}

func (s *GameState) Reset(id, name string) {
	s.ID = id
	s.Name = name
	s.Board = engine.NewBoard()
	s.ToMove = engine.PlayerBlack
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = engine.NewMove(-1, -1)
	s.LastPassed = false
	s.LastMessage = ""
}

// Clone is a plain copy: Board is an immutable value.
func (s GameState) Clone() GameState {
	return s
}

func (s GameState) Score() (black, white int) {
	return s.Board.Count(engine.PlayerBlack), s.Board.Count(engine.PlayerWhite)
}

// finalStatus decides the outcome of a finished board.
func finalStatus(b engine.Board) GameStatus {
	black, white := b.Count(engine.PlayerBlack), b.Count(engine.PlayerWhite)
	switch {
	case black > white:
		return StatusBlackWon
	case white > black:
		return StatusWhiteWon
	default:
		return StatusDraw
	}
}
