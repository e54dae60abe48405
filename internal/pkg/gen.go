package pkg

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	RoomCodeLength   = 6
)

// GenerateRoomCode - generates a 6 character room code from A-Z and 0-9.
func GenerateRoomCode(rng *rand.Rand) string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rng.IntN(len(roomCodeAlphabet))]
	}

	return string(code)
}

// NormalizeRoomCode - room codes are matched case-insensitively.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GeneratePlayerID - generates a new unique player id.
func GeneratePlayerID() string {
	return uuid.NewString()
}
