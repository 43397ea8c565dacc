package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

func runSession(t *testing.T, input string) (string, usecase.GameUseCase) {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := tictactoe.NewGameEngine(ctx, logger, repository.NewMemoryScoreRepository(nil))
	game := usecase.NewGameUseCase(logger, engine)

	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	session := NewSession(logger, game, strings.NewReader(input), out)
	require.NoError(t, session.Run(ctx))

	return buf.String(), game
}

func TestSession_Run(t *testing.T) {
	t.Run("Renders the empty board", func(t *testing.T) {
		output, _ := runSession(t, "q\n")

		assert.Contains(t, output, "X wins 0 | O wins 0 | draws 0")
		assert.Contains(t, output, " 0 | 1 | 2\n")
		assert.Contains(t, output, "step 0, next: X")
	})

	t.Run("Announces the winner and counts it", func(t *testing.T) {
		// When: X completes the top row
		output, game := runSession(t, "0\n3\n1\n4\n2\nq\n")

		// Then: the notification is printed and the score updated
		assert.Contains(t, output, "Player X wins!")
		assert.Contains(t, output, "X wins 1 | O wins 0 | draws 0")
		assert.Equal(t, entity.Score{X: 1}, game.Score(context.Background()))
	})

	t.Run("Announces a draw", func(t *testing.T) {
		output, game := runSession(t, "0\n1\n2\n4\n3\n5\n7\n6\n8\n")

		assert.Contains(t, output, "It's a draw!")
		assert.Equal(t, entity.Score{Draws: 1}, game.Score(context.Background()))
	})

	t.Run("Reports an occupied cell", func(t *testing.T) {
		output, _ := runSession(t, "4\n4\nq\n")

		assert.Contains(t, output, "cell 4 is not playable")
	})

	t.Run("Lists and jumps through history", func(t *testing.T) {
		// When: two moves, a history listing and a jump back
		output, game := runSession(t, "4\n0\nh\nj 1\nq\n")

		// Then: the labels and movers are listed
		assert.Contains(t, output, "  0. Go to game start\n")
		assert.Contains(t, output, "  1. Go to move #1  Player: X\n")
		assert.Contains(t, output, "* 2. Go to move #2  Player: O\n")

		// Then: the game shows step 1
		view := game.State(context.Background())
		assert.Equal(t, 1, view.Step)
		assert.Equal(t, entity.PlayerO, view.Turn)
	})

	t.Run("Reports an unknown step", func(t *testing.T) {
		output, _ := runSession(t, "j 4\nq\n")

		assert.Contains(t, output, "invalid history step")
	})

	t.Run("Reset clears the board", func(t *testing.T) {
		_, game := runSession(t, "4\nr\n")

		assert.Equal(t, entity.Board{}, game.State(context.Background()).Board)
	})
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{line: "4", want: command{kind: commandMove, arg: 4}},
		{line: "  8 ", want: command{kind: commandMove, arg: 8}},
		{line: "j 3", want: command{kind: commandJump, arg: 3}},
		{line: "JUMP 0", want: command{kind: commandJump, arg: 0}},
		{line: "r", want: command{kind: commandReset}},
		{line: "h", want: command{kind: commandHistory}},
		{line: "", want: command{kind: commandHelp}},
		{line: "quit", want: command{kind: commandQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Rejects unknown input", func(t *testing.T) {
		_, err := parseCommand("play x")

		require.ErrorIs(t, err, apperror.ErrUnknownCommand)
	})

	t.Run("Rejects a jump without a number", func(t *testing.T) {
		_, err := parseCommand("j two")

		require.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})
}
