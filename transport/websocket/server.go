package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const (
	writeWait       = 10 * time.Second
	maxMessageSize  = 512
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	State(ctx context.Context) *usecase.GameView
	MakeTurn(ctx context.Context, cell int) (*usecase.GameView, entity.Outcome)
	JumpTo(ctx context.Context, step int) (*usecase.GameView, error)
	Reset(ctx context.Context) *usecase.GameView
}

// client is one connection. gorilla allows a single concurrent writer.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

type Server struct {
	logger *slog.Logger
	uGame  uGame

	upgrader websocket.Upgrader

	clientsMutex sync.Mutex
	clients      map[*client]struct{}

	handlers map[string]func(ctx context.Context, message *Message, sender *client) error
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the game is meant to be reachable from any local page
			CheckOrigin: func(*http.Request) bool { return true },
		},

		clients:  make(map[*client]struct{}),
		handlers: make(map[string]func(context.Context, *Message, *client) error),
	}

	server.handlers[actionGameState] = server.handleState
	server.handlers[actionGameTurn] = server.handleTurn
	server.handlers[actionGameJump] = server.handleJump
	server.handlers[actionGameReset] = server.handleReset

	return server
}

// Handler returns the /ws route.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}

		that.closeClients()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	sender := &client{conn: conn}
	that.register(sender)
	defer that.unregister(sender)

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.send(sender, actionGameState, Payload{Game: that.uGame.State(ctx)}); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	that.handleMessages(ctx, sender)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, sender *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := sender.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendError(sender, message.Action, "unknown action"); err != nil {
				log.Error("failed to send error", "error", err)
			}
			continue
		}

		if err = handler(ctx, &message, sender); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(c *client) {
	that.clientsMutex.Lock()
	that.clients[c] = struct{}{}
	that.clientsMutex.Unlock()
}

func (that *Server) unregister(c *client) {
	that.clientsMutex.Lock()
	delete(that.clients, c)
	that.clientsMutex.Unlock()

	_ = c.conn.Close()
}

func (that *Server) closeClients() {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	for c := range that.clients {
		_ = c.conn.Close()
	}
}

func (that *Server) send(c *client, action string, payload Payload) error {
	data, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	return c.write(data)
}

func (that *Server) sendError(c *client, action, message string) error {
	return that.send(c, action, Payload{Error: message})
}

// broadcast writes the message to every connected client, the sender included.
func (that *Server) broadcast(action string, payload Payload) {
	log := that.logger.With("method", "broadcast")

	data, err := encodeMessage(action, payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	that.clientsMutex.Lock()
	clients := make([]*client, 0, len(that.clients))
	for c := range that.clients {
		clients = append(clients, c)
	}
	that.clientsMutex.Unlock()

	for _, c := range clients {
		if err = c.write(data); err != nil {
			log.Error("failed to write to client", "error", err)
		}
	}
}

func (that *client) write(data []byte) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return data, nil
}
