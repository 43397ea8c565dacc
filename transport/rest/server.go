package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	State(ctx context.Context) *usecase.GameView
	MakeTurn(ctx context.Context, cell int) (*usecase.GameView, entity.Outcome)
	JumpTo(ctx context.Context, step int) (*usecase.GameView, error)
	Reset(ctx context.Context) *usecase.GameView
	Score(ctx context.Context) entity.Score
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// Handler returns the routes of the REST API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("GET /api/game", that.handleState)
	mux.HandleFunc("POST /api/game/move", that.handleMove)
	mux.HandleFunc("POST /api/game/jump", that.handleJump)
	mux.HandleFunc("POST /api/game/reset", that.handleReset)
	mux.HandleFunc("GET /api/score", that.handleScore)

	return mux
}

// Start serves the API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
