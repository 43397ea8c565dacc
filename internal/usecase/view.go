package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const gameStartLabel = "Go to game start"

// GameView is the read-only state a presentation layer renders.
type GameView struct {
	Board   entity.Board   `json:"board"`
	Turn    entity.Mark    `json:"turn"`
	Step    int            `json:"step"`
	History []HistoryEntry `json:"history"`
	Score   entity.Score   `json:"score"`
}

// HistoryEntry is one item of the jump-to list. Player is the mark that made
// the move leading to Step and is empty for the game start.
type HistoryEntry struct {
	Step   int         `json:"step"`
	Label  string      `json:"label"`
	Player entity.Mark `json:"player,omitempty"`
}

func newGameView(engine gameEngine) *GameView {
	moves := engine.History()

	history := make([]HistoryEntry, 0, len(moves)+1)
	history = append(history, HistoryEntry{Step: 0, Label: gameStartLabel})
	for i, move := range moves {
		history = append(history, HistoryEntry{
			Step:   i + 1,
			Label:  fmt.Sprintf("Go to move #%d", i+1),
			Player: move.Player,
		})
	}

	return &GameView{
		Board:   engine.Board(),
		Turn:    engine.Turn(),
		Step:    engine.Step(),
		History: history,
		Score:   engine.Score(),
	}
}
