package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

const defaultConfigPath = "./config.yml"

// main - is the entry point of the application. It parses the command line and runs the chosen mode.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "tictactoe",
		Usage: "hot-seat tic-tac-toe with move history and persisted score",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigPath,
				Usage:   "path to the yml config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the REST and WebSocket APIs (default)",
				Action: serve,
			},
			{
				Name:   "play",
				Usage:  "play in this terminal",
				Action: play,
			},
			{
				Name:   "mcp",
				Usage:  "serve the game as MCP tools over stdio",
				Action: serveMCP,
			},
			{
				Name:   "score",
				Usage:  "print the persisted score",
				Action: printScore,
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	return app.RunServer(ctx, initLogger(conf, os.Stdout), conf)
}

// play and mcp own stdout, so they log to stderr.
func play(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	return app.RunTerminal(ctx, initLogger(conf, os.Stderr), conf, os.Stdin, termenv.NewOutput(os.Stdout))
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	return app.RunMCP(ctx, initLogger(conf, os.Stderr), conf)
}

func printScore(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	score, err := app.ReadScore(ctx, initLogger(conf, os.Stderr), conf)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "X wins %d\nO wins %d\ndraws %d\n", score.X, score.O, score.Draws)

	return nil
}

// initialize logger.
func initLogger(conf *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
