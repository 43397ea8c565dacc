package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// ScoreStore is the durable copy of the score. It is read once on start and
// written after every change.
type ScoreStore interface {
	Get(ctx context.Context) (*entity.Score, error)
	Set(ctx context.Context, score *entity.Score) error
}

// GameEngine owns the board, turn, move history and the in-memory score of a
// single hot-seat game. It is not safe for concurrent use.
type GameEngine struct {
	logger *slog.Logger
	store  ScoreStore

	board   entity.Board
	turn    entity.Mark
	history []entity.Move
	step    int
	score   entity.Score
}

// NewGameEngine returns an engine with an empty board and the score loaded from store.
func NewGameEngine(ctx context.Context, logger *slog.Logger, store ScoreStore) *GameEngine {
	engine := &GameEngine{
		logger: logger.With("component", "engine"),
		store:  store,
		turn:   entity.PlayerX,
	}

	engine.LoadScore(ctx)

	return engine
}

// ApplyMove places the current player's mark on cell. Moves on an occupied or
// out-of-range cell, or on a board that already has a winner, change nothing
// and report OutcomeIgnored.
func (that *GameEngine) ApplyMove(ctx context.Context, cell int) entity.Outcome {
	if !that.board.IsPlayable(cell) || that.board.Winner() != entity.EmptyCell {
		return entity.Outcome{Kind: entity.OutcomeIgnored}
	}

	mover := that.turn
	that.board[cell] = mover
	that.turn = mover.Opponent()

	// a new move discards every record after the displayed step
	that.history = append(that.history[:that.step], entity.Move{Board: that.board, Player: mover})
	that.step = len(that.history)

	if winner := that.board.Winner(); winner != entity.EmptyCell {
		that.score.AddWin(winner)
		that.ResetBoard()
		that.SaveScore(ctx)

		return entity.Outcome{Kind: entity.OutcomeWin, Winner: winner}
	}

	if that.board.IsFull() {
		that.score.AddDraw()
		that.ResetBoard()
		that.SaveScore(ctx)

		return entity.Outcome{Kind: entity.OutcomeDraw}
	}

	return entity.Outcome{Kind: entity.OutcomeContinue}
}

// JumpToStep restores the board as it was after step moves. Step 0 is the empty
// board. History and score are left alone and the restored board is not re-evaluated.
func (that *GameEngine) JumpToStep(step int) error {
	if step < 0 || step > len(that.history) {
		return fmt.Errorf("%w: %d not in [0, %d]", apperror.ErrInvalidStep, step, len(that.history))
	}

	that.step = step
	if step == 0 {
		that.board = entity.Board{}
	} else {
		that.board = that.history[step-1].Board
	}

	that.turn = entity.TurnForStep(step)

	return nil
}

// ResetBoard starts a new game: empty board, no history, X to move. The score is kept.
func (that *GameEngine) ResetBoard() {
	that.board = entity.Board{}
	that.history = nil
	that.step = 0
	that.turn = entity.PlayerX
}

// LoadScore replaces the in-memory score with the stored one. A missing or
// unreadable record yields a zero score.
func (that *GameEngine) LoadScore(ctx context.Context) {
	log := that.logger.With("method", "LoadScore")

	that.score = entity.Score{}

	score, err := that.store.Get(ctx)
	switch {
	case err == nil && score == nil:
		err = apperror.ErrScoreNotFound
	case err == nil:
		err = score.Validate()
	}

	switch {
	case errors.Is(err, apperror.ErrScoreNotFound):
		log.Info("no stored score, starting from zero")
	case err != nil:
		log.Warn("could not load score, starting from zero", "error", err)
	default:
		that.score = *score
		log.Debug("score loaded", "x", score.X, "o", score.O, "draws", score.Draws)
	}
}

// SaveScore writes the current score. Failures are logged and otherwise ignored.
func (that *GameEngine) SaveScore(ctx context.Context) {
	score := that.score

	if err := that.store.Set(ctx, &score); err != nil {
		that.logger.Error("could not save score", "method", "SaveScore", "error", err)
	}
}

func (that *GameEngine) Board() entity.Board {
	return that.board
}

func (that *GameEngine) Turn() entity.Mark {
	return that.turn
}

// History returns a copy of the move records.
func (that *GameEngine) History() []entity.Move {
	history := make([]entity.Move, len(that.history))
	copy(history, that.history)

	return history
}

func (that *GameEngine) Step() int {
	return that.step
}

func (that *GameEngine) Score() entity.Score {
	return that.score
}
