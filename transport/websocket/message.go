package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
)

const (
	actionCreateRoom       = "createRoom"
	actionJoinRoom         = "joinRoom"
	actionJoinTeam         = "joinTeam"
	actionStartGame        = "startGame"
	actionSubmitClue       = "submitClue"
	actionMakeGuess        = "makeGuess"
	actionConfirmIntercept = "confirmIntercept"
	actionConfirmOwnGuess  = "confirmOwnGuess"
	actionResolveRound     = "resolveRound"
	actionGetState         = "getState"

	eventRoomCreated = "roomCreated"
	eventJoined      = "joined"
	eventError       = "error"
	eventStateUpdate = "stateUpdate"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload holds the fields of every inbound action. RoomCode and PlayerID
// fall back to the identity the connection got from joinRoom.
type Payload struct {
	RoomCode string `json:"roomCode,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
	Nickname string `json:"nickname,omitempty"`

	Team             string   `json:"team,omitempty"`
	UniqueCodes      *bool    `json:"uniqueCodes,omitempty"`
	Words            []string `json:"words,omitempty"`
	Code             []int    `json:"code,omitempty"`
	InterceptingTeam string   `json:"interceptingTeam,omitempty"`
	GuessedCorrectly bool     `json:"guessedCorrectly,omitempty"`
	Outcome          string   `json:"outcome,omitempty"`
}

type roomCreatedPayload struct {
	Code string `json:"code"`
}

type joinedPayload struct {
	PlayerID string `json:"playerId"`
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type stateUpdatePayload struct {
	State        entity.PlayerState `json:"state"`
	YourPlayerID string             `json:"yourPlayerId"`
}
