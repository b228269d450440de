package main

import "github.com/khodemetamir/Reversi/engine"

// HistoryEntry records one turn. A pass has Pass set and no move.
type HistoryEntry struct {
	Move      engine.Move
	Player    engine.PlayerColor
	Flipped   []engine.Move
	Pass      bool
	ElapsedMs float64
	IsAi      bool
	Depth     int
	FromBook  bool
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
