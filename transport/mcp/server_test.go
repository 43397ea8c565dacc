package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

type toolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := tictactoe.NewGameEngine(context.Background(), logger, repository.NewMemoryScoreRepository(nil))

	return New(logger, usecase.NewGameUseCase(logger, engine))
}

func callTool(t *testing.T, handler toolHandler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	request := mcp.CallToolRequest{}
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	switch content := result.Content[0].(type) {
	case mcp.TextContent:
		return content.Text
	case *mcp.TextContent:
		return content.Text
	default:
		t.Fatalf("unexpected content type %T", content)
		return ""
	}
}

type moveResult struct {
	Game    usecase.GameView `json:"game"`
	Outcome entity.Outcome   `json:"outcome"`
	Message string           `json:"message"`
}

func TestServer_MakeMove(t *testing.T) {
	t.Run("Applies the move", func(t *testing.T) {
		// Given: a new game
		srv := newTestServer(t)

		// When: X plays cell 4
		result := callTool(t, srv.handleMakeMove, map[string]interface{}{"cell": float64(4)})

		// Then: the result carries the new board
		require.False(t, result.IsError)

		var move moveResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &move))
		assert.Equal(t, entity.PlayerX, move.Game.Board[4])
		assert.Equal(t, entity.OutcomeContinue, move.Outcome.Kind)
	})

	t.Run("Reports a draw", func(t *testing.T) {
		// Given: a new game
		srv := newTestServer(t)

		// When: the board is filled without a line
		var result *mcp.CallToolResult
		for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			result = callTool(t, srv.handleMakeMove, map[string]interface{}{"cell": float64(cell)})
		}

		// Then: the draw message is returned and counted
		var move moveResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &move))
		assert.Equal(t, entity.OutcomeDraw, move.Outcome.Kind)
		assert.Equal(t, "It's a draw!", move.Message)
		assert.Equal(t, entity.Score{Draws: 1}, move.Game.Score)
	})

	t.Run("Missing cell is a tool error", func(t *testing.T) {
		srv := newTestServer(t)

		result := callTool(t, srv.handleMakeMove, map[string]interface{}{})

		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "cell is required")
	})

	t.Run("Fractional cell is a tool error", func(t *testing.T) {
		srv := newTestServer(t)

		result := callTool(t, srv.handleMakeMove, map[string]interface{}{"cell": 1.5})

		assert.True(t, result.IsError)
	})
}

func TestServer_JumpToStep(t *testing.T) {
	t.Run("Restores the step", func(t *testing.T) {
		// Given: two moves
		srv := newTestServer(t)
		callTool(t, srv.handleMakeMove, map[string]interface{}{"cell": float64(0)})
		callTool(t, srv.handleMakeMove, map[string]interface{}{"cell": float64(1)})

		// When: jumping to step 0
		result := callTool(t, srv.handleJumpToStep, map[string]interface{}{"step": float64(0)})

		// Then: the empty board is returned
		require.False(t, result.IsError)

		var game usecase.GameView
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &game))
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Len(t, game.History, 3)
	})

	t.Run("Unknown step is a tool error", func(t *testing.T) {
		srv := newTestServer(t)

		result := callTool(t, srv.handleJumpToStep, map[string]interface{}{"step": float64(2)})

		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "invalid history step")
	})
}

func TestServer_StateResetScore(t *testing.T) {
	// Given: one move
	srv := newTestServer(t)
	callTool(t, srv.handleMakeMove, map[string]interface{}{"cell": float64(8)})

	// When: reading the state
	var state usecase.GameView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, callTool(t, srv.handleGameState, nil))), &state))

	// Then: the move is visible
	assert.Equal(t, entity.PlayerX, state.Board[8])

	// When: resetting
	var reset usecase.GameView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, callTool(t, srv.handleResetBoard, nil))), &reset))

	// Then: the board is empty and the score is zero
	assert.Equal(t, entity.Board{}, reset.Board)

	var score entity.Score
	require.NoError(t, json.Unmarshal([]byte(resultText(t, callTool(t, srv.handleScore, nil))), &score))
	assert.Equal(t, entity.Score{}, score)
}
