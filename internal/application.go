package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/terminal"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/mcp"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/websocket"
)

// App is the single game shared by every adapter, plus the storage it persists to.
type App struct {
	Game usecase.GameUseCase

	closeStorage func() error
}

// NewApp opens the configured score storage and loads the score into a new engine.
func NewApp(ctx context.Context, logger *slog.Logger, conf *config.Config) (*App, error) {
	store, closeStorage, err := newScoreStore(ctx, conf)
	if err != nil {
		return nil, err
	}

	engine := tictactoe.NewGameEngine(ctx, logger, store)

	return &App{
		Game:         usecase.NewGameUseCase(logger, engine),
		closeStorage: closeStorage,
	}, nil
}

func (that *App) Close() error {
	if that.closeStorage == nil {
		return nil
	}

	return that.closeStorage()
}

func newScoreStore(ctx context.Context, conf *config.Config) (repository.ScoreRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisScoreRepository(redisStorage.Connection, conf.Storage.ScoreKey), redisStorage.Close, nil

	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteScoreRepository(sqliteStorage.Connection, conf.Storage.ScoreKey), sqliteStorage.Close, nil

	case config.StorageMemory:
		return repository.NewMemoryScoreRepository(nil), nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStorage, conf.Storage.Driver)
	}
}

// withSignals cancels the returned context on SIGINT or SIGTERM.
func withSignals(ctx context.Context, log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func openApp(ctx context.Context, logger *slog.Logger, conf *config.Config) (*App, func(), error) {
	log := logger.With("component", "app")

	app, err := NewApp(ctx, logger, conf)
	if err != nil {
		return nil, nil, err
	}

	return app, func() {
		if err := app.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}, nil
}

// RunServer - serves the REST and WebSocket APIs until a signal arrives or a server fails.
func RunServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(ctx, log)
	defer cancel()

	app, closeApp, err := openApp(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeApp()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, app.Game).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, app.Game).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunTerminal plays a hot-seat game on in/out.
func RunTerminal(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out *termenv.Output) error {
	ctx, cancel := withSignals(ctx, logger)
	defer cancel()

	app, closeApp, err := openApp(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeApp()

	if err = terminal.NewSession(logger, app.Game, in, out).Run(ctx); err != nil {
		return fmt.Errorf("terminal session: %w", err)
	}

	return nil
}

// RunMCP serves the game as MCP tools over stdio.
func RunMCP(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	app, closeApp, err := openApp(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeApp()

	return mcp.New(logger, app.Game).ServeStdio()
}

// ReadScore returns the persisted tallies, zero when nothing usable is stored.
func ReadScore(ctx context.Context, logger *slog.Logger, conf *config.Config) (entity.Score, error) {
	app, closeApp, err := openApp(ctx, logger, conf)
	if err != nil {
		return entity.Score{}, err
	}
	defer closeApp()

	return app.Game.Score(ctx), nil
}
