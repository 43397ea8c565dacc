package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

type uGame interface {
	State(ctx context.Context) *usecase.GameView
	MakeTurn(ctx context.Context, cell int) (*usecase.GameView, entity.Outcome)
	JumpTo(ctx context.Context, step int) (*usecase.GameView, error)
	Reset(ctx context.Context) *usecase.GameView
}

// Session plays a hot-seat game on a terminal, reading one command per line.
type Session struct {
	logger *slog.Logger
	uGame  uGame

	in       *bufio.Scanner
	out      io.Writer
	renderer *renderer
}

func NewSession(logger *slog.Logger, uGame uGame, in io.Reader, out *termenv.Output) *Session {
	return &Session{
		logger:   logger.With("component", "terminal"),
		uGame:    uGame,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: &renderer{out: out},
	}
}

// Run returns when the player quits, input ends or ctx is canceled.
func (that *Session) Run(ctx context.Context) error {
	game := that.uGame.State(ctx)
	that.renderer.game(that.out, game)
	help(that.out)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(that.out, "%s> ", that.renderer.mark(game.Turn))

		if !that.in.Scan() {
			fmt.Fprintln(that.out)
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		cmd, err := parseCommand(that.in.Text())
		if err != nil {
			fmt.Fprintln(that.out, err)
			help(that.out)
			continue
		}

		switch cmd.kind {
		case commandQuit:
			return nil
		case commandHelp:
			help(that.out)
			continue
		case commandHistory:
			that.renderer.history(that.out, game)
			continue
		case commandReset:
			game = that.uGame.Reset(ctx)
		case commandJump:
			jumped, err := that.uGame.JumpTo(ctx, cmd.arg)
			if err != nil {
				fmt.Fprintln(that.out, err)
				continue
			}
			game = jumped
		case commandMove:
			var outcome entity.Outcome
			game, outcome = that.uGame.MakeTurn(ctx, cmd.arg)

			switch {
			case outcome.Kind == entity.OutcomeIgnored:
				fmt.Fprintf(that.out, "cell %d is not playable\n", cmd.arg)
				continue
			case outcome.IsTerminal():
				that.renderer.notification(that.out, outcome)
				that.logger.Debug("game finished", "outcome", outcome.Kind, "winner", outcome.Winner)
			}
		}

		that.renderer.game(that.out, game)
	}
}
