package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const (
	actionGameState = "game:state"
	actionGameTurn  = "game:turn"
	actionGameJump  = "game:jump"
	actionGameReset = "game:reset"

	actionGameWin  = "game:win"
	actionGameDraw = "game:draw"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell *int `json:"cell,omitempty"`
	Step *int `json:"step,omitempty"`

	Game    *usecase.GameView `json:"game,omitempty"`
	Outcome *entity.Outcome   `json:"outcome,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func notificationAction(outcome entity.Outcome) string {
	if outcome.Kind == entity.OutcomeWin {
		return actionGameWin
	}
	return actionGameDraw
}
