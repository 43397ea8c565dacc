package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

type commandKind int

const (
	commandMove commandKind = iota
	commandJump
	commandReset
	commandHistory
	commandHelp
	commandQuit
)

type command struct {
	kind commandKind
	arg  int
}

// parseCommand reads one input line: a cell number, "j N", "r", "h", "?" or "q".
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{kind: commandHelp}, nil
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return command{kind: commandQuit}, nil
	case "r", "reset":
		return command{kind: commandReset}, nil
	case "h", "history":
		return command{kind: commandHistory}, nil
	case "?", "help":
		return command{kind: commandHelp}, nil
	case "j", "jump":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("%w: jump needs a step", apperror.ErrInvalidArgument)
		}

		step, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, fmt.Errorf("%w: step %q", apperror.ErrInvalidArgument, fields[1])
		}

		return command{kind: commandJump, arg: step}, nil
	}

	cell, err := strconv.Atoi(fields[0])
	if err != nil || len(fields) != 1 {
		return command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, line)
	}

	return command{kind: commandMove, arg: cell}, nil
}
