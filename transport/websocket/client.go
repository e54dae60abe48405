package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/decrypto-backend/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 8 << 10
)

// client is one browser connection and the player it speaks for.
type client struct {
	conn    *websocket.Conn
	limiter *rate.Limiter

	writeMutex sync.Mutex

	identityMutex sync.RWMutex
	roomCode      string
	playerID      string
}

func newClient(conn *websocket.Conn, limit rate.Limit, burst int) *client {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &client{
		conn:    conn,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (that *client) send(action string, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write %s: %w", action, err)
	}

	return nil
}

func (that *client) ping() error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	return that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// keepAlive pings the peer until done is closed or a ping fails.
func (that *client) keepAlive(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := that.ping(); err != nil {
				return
			}
		}
	}
}

func (that *client) bind(roomCode, playerID string) {
	that.identityMutex.Lock()
	defer that.identityMutex.Unlock()

	that.roomCode = roomCode
	that.playerID = playerID
}

func (that *client) identity() (string, string) {
	that.identityMutex.RLock()
	defer that.identityMutex.RUnlock()

	return that.roomCode, that.playerID
}

// resolve normalizes the payload's room code and fills a missing room or
// player from the bound identity.
func (that *client) resolve(payload *Payload) {
	roomCode, playerID := that.identity()

	payload.RoomCode = pkg.NormalizeRoomCode(payload.RoomCode)
	if payload.RoomCode == "" {
		payload.RoomCode = roomCode
	}
	if payload.PlayerID == "" {
		payload.PlayerID = playerID
	}
}

func (that *client) close() error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	_ = that.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))

	return that.conn.Close()
}
