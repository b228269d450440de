package main

import (
	"fmt"
	"strings"

	"github.com/khodemetamir/Reversi/engine"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	BlackType  PlayerType        `json:"-"`
	WhiteType  PlayerType        `json:"-"`
	Difficulty engine.Difficulty `json:"difficulty"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BlackType:  PlayerHuman,
		WhiteType:  PlayerAI,
		Difficulty: engine.DifficultyMedium,
	}
}

// humanSeat is the seat taken by the local player: "black", "white",
// "none" (engine vs engine) or "both" (two humans at one screen).
type humanSeat string

const (
	seatBlack humanSeat = "black"
	seatWhite humanSeat = "white"
	seatNone  humanSeat = "none"
	seatBoth  humanSeat = "both"
)

func humanSeatFromString(s string) (humanSeat, error) {
	seat := humanSeat(strings.ToLower(strings.TrimSpace(s)))
	switch seat {
	case seatBlack, seatWhite, seatNone, seatBoth:
		return seat, nil
	case "":
		return seatBlack, nil
	default:
		return "", fmt.Errorf("unknown human color %q", s)
	}
}

func settingsFor(difficulty engine.Difficulty, seat humanSeat) GameSettings {
	settings := GameSettings{Difficulty: difficulty, BlackType: PlayerAI, WhiteType: PlayerAI}
	switch seat {
	case seatBlack:
		settings.BlackType = PlayerHuman
	case seatWhite:
		settings.WhiteType = PlayerHuman
	case seatBoth:
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	}
	return settings
}

func (s GameSettings) seat() humanSeat {
	switch {
	case s.BlackType == PlayerHuman && s.WhiteType == PlayerHuman:
		return seatBoth
	case s.BlackType == PlayerHuman:
		return seatBlack
	case s.WhiteType == PlayerHuman:
		return seatWhite
	default:
		return seatNone
	}
}

func (s GameSettings) typeFor(color engine.PlayerColor) PlayerType {
	if color == engine.PlayerBlack {
		return s.BlackType
	}
	return s.WhiteType
}
