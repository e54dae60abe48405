package entity

type Player struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Team      Team   `json:"team"`
	Connected bool   `json:"connected"`
	IsEncoder bool   `json:"isEncoder"`
}

func NewPlayer(id, nickname string) *Player {
	return &Player{
		ID:        id,
		Nickname:  nickname,
		Team:      TeamSpectator,
		Connected: true,
	}
}

// Clue is what the encoder publishes for the round's code.
type Clue struct {
	EncoderID       string   `json:"encoderId"`
	EncoderNickname string   `json:"encoderNickname"`
	Words           []string `json:"words"`
	TargetCode      Code     `json:"targetCode"`
	RoundNumber     int      `json:"roundNumber"`
}

type Guess struct {
	PlayerID string `json:"playerId"`
	Team     Team   `json:"team"`
	Code     Code   `json:"code"`
	Correct  bool   `json:"correct"`
}
