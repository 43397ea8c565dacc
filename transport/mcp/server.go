package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const (
	serverName    = "Tic-Tac-Toe"
	serverVersion = "1.0.0"
)

type uGame interface {
	State(ctx context.Context) *usecase.GameView
	MakeTurn(ctx context.Context, cell int) (*usecase.GameView, entity.Outcome)
	JumpTo(ctx context.Context, step int) (*usecase.GameView, error)
	Reset(ctx context.Context) *usecase.GameView
	Score(ctx context.Context) entity.Score
}

// Server exposes the hot-seat game as MCP tools over stdio.
type Server struct {
	logger    *slog.Logger
	uGame     uGame
	mcpServer *server.MCPServer
}

func New(logger *slog.Logger, uGame uGame) *Server {
	that := &Server{
		logger: logger.With("component", "mcp"),
		uGame:  uGame,
	}

	that.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hot-seat tic-tac-toe on a 3x3 board.

Cells are numbered 0-8 left to right, top to bottom. X always opens a game.
A finished game (win or draw) updates the score and starts a new board.
Moves on occupied cells are ignored.`),
	)

	that.registerTools()

	return that
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func (that *Server) ServeStdio() error {
	if err := server.ServeStdio(that.mcpServer); err != nil {
		return fmt.Errorf("mcp stdio server: %w", err)
	}

	return nil
}

func (that *Server) registerTools() {
	that.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, whose turn it is, the move history and the score",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, that.handleGameState)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "make_move",
		Description: "Place the current player's mark on a cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"cell": map[string]interface{}{
					"type":        "integer",
					"description": "Cell index from 0 (top left) to 8 (bottom right)",
				},
			},
			Required: []string{"cell"},
		},
	}, that.handleMakeMove)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "jump_to_step",
		Description: "Show the board as it was after a number of moves; 0 is the empty board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"step": map[string]interface{}{
					"type":        "integer",
					"description": "History step to restore",
				},
			},
			Required: []string{"step"},
		},
	}, that.handleJumpToStep)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Clear the board and history; the score is kept",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, that.handleResetBoard)

	that.mcpServer.AddTool(mcp.Tool{
		Name:        "score",
		Description: "Get the win and draw tallies",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, that.handleScore)
}

func (that *Server) handleGameState(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(that.uGame.State(ctx))
}

func (that *Server) handleMakeMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cell, err := intArgument(request, "cell")
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("%w: %w", apperror.ErrInvalidCell, err).Error()), nil
	}

	game, outcome := that.uGame.MakeTurn(ctx, cell)

	return jsonResult(struct {
		Game    *usecase.GameView `json:"game"`
		Outcome entity.Outcome    `json:"outcome"`
		Message string            `json:"message,omitempty"`
	}{
		Game:    game,
		Outcome: outcome,
		Message: outcome.Message(),
	})
}

func (that *Server) handleJumpToStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	step, err := intArgument(request, "step")
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("%w: %w", apperror.ErrInvalidStep, err).Error()), nil
	}

	game, err := that.uGame.JumpTo(ctx, step)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(game)
}

func (that *Server) handleResetBoard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(that.uGame.Reset(ctx))
}

func (that *Server) handleScore(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(that.uGame.Score(ctx))
}

// intArgument reads a whole number argument. JSON numbers arrive as float64.
func intArgument(request mcp.CallToolRequest, name string) (int, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	value, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", apperror.ErrInvalidArgument, name)
	}

	switch number := value.(type) {
	case float64:
		if number != math.Trunc(number) {
			return 0, fmt.Errorf("%w: %s must be a whole number", apperror.ErrInvalidArgument, name)
		}
		return int(number), nil
	case int:
		return number, nil
	case json.Number:
		n, err := number.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", apperror.ErrInvalidArgument, name, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", apperror.ErrInvalidArgument, name)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}
