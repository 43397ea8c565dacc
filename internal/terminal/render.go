package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const (
	colorX = "9"
	colorO = "12"

	rowSeparator = "---+---+---"
)

type renderer struct {
	out *termenv.Output
}

func (that *renderer) mark(mark entity.Mark) termenv.Style {
	style := that.out.String(string(mark)).Bold()

	switch mark {
	case entity.PlayerX:
		return style.Foreground(that.out.Color(colorX))
	case entity.PlayerO:
		return style.Foreground(that.out.Color(colorO))
	default:
		return style
	}
}

func (that *renderer) cell(board entity.Board, index int) string {
	if board[index] == entity.EmptyCell {
		return that.out.String(strconv.Itoa(index)).Faint().String()
	}

	return that.mark(board[index]).String()
}

func (that *renderer) game(w io.Writer, game *usecase.GameView) {
	fmt.Fprintf(w, "%s wins %d | %s wins %d | draws %d\n\n",
		that.mark(entity.PlayerX), game.Score.X,
		that.mark(entity.PlayerO), game.Score.O,
		game.Score.Draws)

	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, that.cell(game.Board, row*3+col))
		}

		fmt.Fprintf(w, " %s\n", strings.Join(cells, " | "))
		if row < 2 {
			fmt.Fprintln(w, rowSeparator)
		}
	}

	fmt.Fprintf(w, "\nstep %d, next: %s\n", game.Step, that.mark(game.Turn))
}

func (that *renderer) history(w io.Writer, game *usecase.GameView) {
	fmt.Fprintln(w, "History")

	for _, entry := range game.History {
		current := " "
		if entry.Step == game.Step {
			current = "*"
		}

		if entry.Player == entity.EmptyCell {
			fmt.Fprintf(w, "%s %d. %s\n", current, entry.Step, entry.Label)
			continue
		}

		fmt.Fprintf(w, "%s %d. %s  Player: %s\n", current, entry.Step, entry.Label, entry.Player)
	}
}

func (that *renderer) notification(w io.Writer, outcome entity.Outcome) {
	fmt.Fprintf(w, "\n%s\n\n", that.out.String(outcome.Message()).Bold().Underline())
}

func help(w io.Writer) {
	fmt.Fprintln(w, "commands: 0-8 play a cell, j N jump to step N, h history, r reset, q quit")
}
