package usecase

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
	"github.com/rocketscienceinc/decrypto-backend/internal/pkg"
)

// Room owns one game and serializes every access to it.
type Room struct {
	mu   sync.Mutex
	code string
	game *entity.Game
}

func (that *Room) Code() string {
	return that.code
}

// Do runs fn with exclusive access to the room's game.
func (that *Room) Do(fn func(game *entity.Game) error) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return fn(that.game)
}

// RoomRegistry maps room codes to live rooms.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	words []string
	rng   *rand.Rand // guarded by mu
	clock quartz.Clock
}

func NewRoomRegistry(words []string, rng *rand.Rand, clock quartz.Clock) *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
		words: words,
		rng:   rng,
		clock: clock,
	}
}

// CreateRoom registers a new waiting game under a fresh code.
func (that *RoomRegistry) CreateRoom() *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := pkg.GenerateRoomCode(that.rng)
	for that.rooms[code] != nil {
		code = pkg.GenerateRoomCode(that.rng)
	}

	gameRng := rand.New(rand.NewPCG(that.rng.Uint64(), that.rng.Uint64())) //nolint: gosec // game randomness

	room := &Room{
		code: code,
		game: entity.NewGame(code, that.words, entity.WithRand(gameRng), entity.WithClock(that.clock)),
	}
	that.rooms[code] = room

	return room
}

// GetRoom looks a room up by code, ignoring case.
func (that *RoomRegistry) GetRoom(code string) (*Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[pkg.NormalizeRoomCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return room, nil
}

// CleanupEmptyRooms drops every room without players and reports how many
// were removed.
func (that *RoomRegistry) CleanupEmptyRooms() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for code, room := range that.rooms {
		var empty bool
		_ = room.Do(func(game *entity.Game) error {
			empty = game.IsEmpty()
			return nil
		})

		if empty {
			delete(that.rooms, code)
			removed++
		}
	}

	return removed
}

func (that *RoomRegistry) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}

// Players counts players across all rooms.
func (that *RoomRegistry) Players() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	total := 0
	for _, room := range that.rooms {
		_ = room.Do(func(game *entity.Game) error {
			total += game.PlayerCount()
			return nil
		})
	}

	return total
}
