package entity

import "fmt"

type OutcomeKind string

const (
	OutcomeContinue OutcomeKind = "continue"
	OutcomeWin      OutcomeKind = "win"
	OutcomeDraw     OutcomeKind = "draw"
	OutcomeIgnored  OutcomeKind = "ignored"
)

// Outcome is what a move produced. Callers decide how to notify players.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Mark        `json:"winner,omitempty"`
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

// Message returns the player-facing notification for a finished game.
func (that Outcome) Message() string {
	switch that.Kind {
	case OutcomeWin:
		return fmt.Sprintf("Player %s wins!", that.Winner)
	case OutcomeDraw:
		return "It's a draw!"
	default:
		return ""
	}
}
