package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

func (that *Server) handleState(ctx context.Context, msg *Message, sender *client) error {
	return that.send(sender, msg.Action, Payload{Game: that.uGame.State(ctx)})
}

func (that *Server) handleTurn(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Cell == nil {
		return that.sendError(sender, msg.Action, apperror.ErrInvalidCell.Error())
	}

	game, outcome := that.uGame.MakeTurn(ctx, *payloadReq.Cell)

	// nothing changed, only the sender needs to know
	if outcome.Kind == entity.OutcomeIgnored {
		return that.send(sender, msg.Action, Payload{Game: game, Outcome: &outcome})
	}

	that.broadcast(msg.Action, Payload{Game: game, Outcome: &outcome})

	if outcome.IsTerminal() {
		that.broadcast(notificationAction(outcome), Payload{Outcome: &outcome, Message: outcome.Message()})
		that.logger.Info("game finished", "method", "handleTurn", "outcome", outcome.Kind, "winner", outcome.Winner)
	}

	return nil
}

func (that *Server) handleJump(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Step == nil {
		return that.sendError(sender, msg.Action, apperror.ErrInvalidStep.Error())
	}

	game, err := that.uGame.JumpTo(ctx, *payloadReq.Step)
	if errors.Is(err, apperror.ErrInvalidStep) {
		return that.sendError(sender, msg.Action, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	that.broadcast(msg.Action, Payload{Game: game})

	return nil
}

func (that *Server) handleReset(ctx context.Context, msg *Message, _ *client) error {
	that.broadcast(msg.Action, Payload{Game: that.uGame.Reset(ctx)})

	return nil
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
