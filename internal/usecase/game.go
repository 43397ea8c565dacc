package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type GameUseCase interface {
	State(ctx context.Context) *GameView
	MakeTurn(ctx context.Context, cell int) (*GameView, entity.Outcome)
	JumpTo(ctx context.Context, step int) (*GameView, error)
	Reset(ctx context.Context) *GameView
	Score(ctx context.Context) entity.Score
}

type gameEngine interface {
	ApplyMove(ctx context.Context, cell int) entity.Outcome
	JumpToStep(step int) error
	ResetBoard()

	Board() entity.Board
	Turn() entity.Mark
	History() []entity.Move
	Step() int
	Score() entity.Score
}

// gameUseCase serialises every adapter onto the single engine.
type gameUseCase struct {
	logger *slog.Logger

	mu     sync.Mutex
	engine gameEngine
}

func NewGameUseCase(logger *slog.Logger, engine gameEngine) GameUseCase {
	return &gameUseCase{
		logger: logger.With("component", "usecase"),
		engine: engine,
	}
}

func (that *gameUseCase) State(_ context.Context) *GameView {
	that.mu.Lock()
	defer that.mu.Unlock()

	return newGameView(that.engine)
}

func (that *gameUseCase) MakeTurn(ctx context.Context, cell int) (*GameView, entity.Outcome) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "cell", cell)

	mover := that.engine.Turn()
	outcome := that.engine.ApplyMove(ctx, cell)

	switch outcome.Kind {
	case entity.OutcomeIgnored:
		log.Debug("move ignored", "player", mover)
	case entity.OutcomeWin, entity.OutcomeDraw:
		log.Info("game finished", "outcome", outcome.Kind, "winner", outcome.Winner)
	default:
		log.Debug("move applied", "player", mover)
	}

	return newGameView(that.engine), outcome
}

func (that *gameUseCase) JumpTo(_ context.Context, step int) (*GameView, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.engine.JumpToStep(step); err != nil {
		that.logger.Debug("jump rejected", "method", "JumpTo", "error", err)
		return nil, err
	}

	return newGameView(that.engine), nil
}

func (that *gameUseCase) Reset(_ context.Context) *GameView {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.engine.ResetBoard()
	that.logger.Info("board reset", "method", "Reset")

	return newGameView(that.engine)
}

func (that *gameUseCase) Score(_ context.Context) entity.Score {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Score()
}
