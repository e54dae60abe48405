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

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	CreateRoom(ctx context.Context) string
	JoinRoom(ctx context.Context, roomCode, nickname string) (*entity.Player, error)
	LeaveRoom(ctx context.Context, roomCode, playerID string) error

	JoinTeam(ctx context.Context, roomCode, playerID string, team entity.Team) error
	StartGame(ctx context.Context, roomCode, playerID string, uniqueCodes bool) error
	SubmitClue(ctx context.Context, roomCode, playerID string, words []string) error
	MakeGuess(ctx context.Context, roomCode, playerID string, code []int, team entity.Team) error
	ConfirmIntercept(ctx context.Context, roomCode, playerID string, team entity.Team) error
	ConfirmOwnGuess(ctx context.Context, roomCode, playerID string, guessed bool) error
	ResolveRound(ctx context.Context, roomCode, playerID string, outcome entity.RoundOutcome) error

	MarkDisconnected(ctx context.Context, roomCode, playerID string)
	State(ctx context.Context, roomCode, playerID string) (entity.PlayerState, error)
	States(ctx context.Context, roomCode string, playerIDs []string) (map[string]entity.PlayerState, error)
}

type Server struct {
	logger *slog.Logger
	game   gameManager

	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int

	connectionsMutex sync.RWMutex
	connections      map[string]map[*client]struct{} // room code -> clients
	clients          map[*client]struct{}

	handlers map[string]func(ctx context.Context, c *client, payload *Payload) error
}

// New creates the game socket server. Each connection may send
// messagesPerSecond messages on average with bursts up to burst.
func New(logger *slog.Logger, game gameManager, messagesPerSecond float64, burst int) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		limit: rate.Limit(messagesPerSecond),
		burst: burst,

		connections: make(map[string]map[*client]struct{}),
		clients:     make(map[*client]struct{}),

		handlers: make(map[string]func(context.Context, *client, *Payload) error),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionJoinTeam] = server.handleJoinTeam
	server.handlers[actionStartGame] = server.handleStartGame
	server.handlers[actionSubmitClue] = server.handleSubmitClue
	server.handlers[actionMakeGuess] = server.handleMakeGuess
	server.handlers[actionConfirmIntercept] = server.handleConfirmIntercept
	server.handlers[actionConfirmOwnGuess] = server.handleConfirmOwnGuess
	server.handlers[actionResolveRound] = server.handleResolveRound
	server.handlers[actionGetState] = server.handleGetState

	return server
}

// Router - serves the socket endpoint at /ws.
func (that *Server) Router(ctx context.Context) http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
		that.closeAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until it closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn, that.limit, that.burst)

	that.connectionsMutex.Lock()
	that.clients[c] = struct{}{}
	that.connectionsMutex.Unlock()

	log.Debug("WebSocket connection established", "remote", req.RemoteAddr)

	done := make(chan struct{})
	go c.keepAlive(done)

	that.handleMessages(ctx, c)

	close(done)
	that.handleDisconnect(ctx, c)
	_ = conn.Close()
}

// handleMessages - processes messages from the client until the read fails.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		if err = that.processMessage(ctx, c, data); err != nil {
			log.Debug("action failed", "error", err)

			if err = that.sendErrorResponse(c, err); err != nil {
				log.Error("failed to send error response", "error", err)
			}
		}
	}
}

func (that *Server) processMessage(ctx context.Context, c *client, data []byte) error {
	if !c.limiter.Allow() {
		return apperror.ErrRateLimited
	}

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, message.Action)
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
		}
	}

	c.resolve(&payload)

	return handler(ctx, c, &payload)
}

func (that *Server) sendErrorResponse(c *client, err error) error {
	return c.send(eventError, errorPayload{Message: err.Error()})
}

// handleDisconnect removes the connection's player from its room and tells
// everybody left.
func (that *Server) handleDisconnect(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleDisconnect")

	roomCode, playerID := c.identity()
	that.unbind(c)

	that.connectionsMutex.Lock()
	delete(that.clients, c)
	that.connectionsMutex.Unlock()

	if roomCode == "" {
		return
	}

	if err := that.game.LeaveRoom(ctx, roomCode, playerID); err != nil {
		log.Warn("failed to remove player", "room", roomCode, "player", playerID, "error", err)
		return
	}

	that.broadcast(ctx, roomCode)
}

// bind attaches the connection to a room, detaching it from the previous one.
func (that *Server) bind(c *client, roomCode, playerID string) {
	that.unbind(c)
	c.bind(roomCode, playerID)

	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	if that.connections[roomCode] == nil {
		that.connections[roomCode] = make(map[*client]struct{})
	}
	that.connections[roomCode][c] = struct{}{}
}

func (that *Server) unbind(c *client) {
	roomCode, _ := c.identity()
	if roomCode == "" {
		return
	}

	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	delete(that.connections[roomCode], c)
	if len(that.connections[roomCode]) == 0 {
		delete(that.connections, roomCode)
	}
}

func (that *Server) roomClients(roomCode string) []*client {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	clients := make([]*client, 0, len(that.connections[roomCode]))
	for c := range that.connections[roomCode] {
		clients = append(clients, c)
	}

	return clients
}

// broadcast sends every connection in the room its own view of the game.
// Connections are written to in parallel, so a slow peer only holds up
// itself. A failed delivery marks that player disconnected.
func (that *Server) broadcast(ctx context.Context, roomCode string) {
	log := that.logger.With("method", "broadcast", "room", roomCode)

	clients := that.roomClients(roomCode)
	if len(clients) == 0 {
		return
	}

	playerIDs := make([]string, 0, len(clients))
	for _, c := range clients {
		_, playerID := c.identity()
		playerIDs = append(playerIDs, playerID)
	}

	states, err := that.game.States(ctx, roomCode, playerIDs)
	if err != nil {
		log.Error("failed to project room state", "error", err)
		return
	}

	var group errgroup.Group
	for i, c := range clients {
		playerID := playerIDs[i]

		payload := stateUpdatePayload{
			State:        states[playerID],
			YourPlayerID: playerID,
		}

		group.Go(func() error {
			if sendErr := c.send(eventStateUpdate, payload); sendErr != nil {
				log.Error("failed to send state update", "player", playerID, "error", sendErr)
				that.game.MarkDisconnected(ctx, roomCode, playerID)
			}
			return nil
		})
	}

	_ = group.Wait()
}

func (that *Server) closeAll() {
	that.connectionsMutex.RLock()
	clients := make([]*client, 0, len(that.clients))
	for c := range that.clients {
		clients = append(clients, c)
	}
	that.connectionsMutex.RUnlock()

	for _, c := range clients {
		_ = c.close()
	}
}
