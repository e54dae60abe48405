package entity

import (
	"slices"
	"time"
)

// PlayerState is the game as one particular player is allowed to see it.
type PlayerState struct {
	RoomCode    string   `json:"roomCode"`
	Phase       Phase    `json:"phase"`
	Players     []Player `json:"players"`
	RedTeam     []string `json:"redTeam"`
	BlueTeam    []string `json:"blueTeam"`
	Spectators  []string `json:"spectators"`
	SecretWords []string `json:"secretWords"`

	RedIntercepts  int `json:"redIntercepts"`
	BlueIntercepts int `json:"blueIntercepts"`
	RedMistakes    int `json:"redMistakes"`
	BlueMistakes   int `json:"blueMistakes"`

	CurrentRound       int         `json:"currentRound"`
	RedRound           int         `json:"redRound"`
	BlueRound          int         `json:"blueRound"`
	CurrentEncoderID   string      `json:"currentEncoderId"`
	CurrentEncoderTeam Team        `json:"currentEncoderTeam"`
	CurrentCode        *Code       `json:"currentCode"`
	CurrentClue        *ClueView   `json:"currentClue"`
	CurrentGuesses     []GuessView `json:"currentGuesses"`

	Winner        Team        `json:"winner"`
	UniqueCodes   bool        `json:"uniqueCodes"`
	MessageLog    []string    `json:"messageLog"`
	RoundsHistory []RoundView `json:"roundsHistory"`

	MyTeam     Team   `json:"myTeam"`
	MyNickname string `json:"myNickname"`
	IsEncoder  bool   `json:"isEncoder"`
}

// ClueView carries the target code only for the encoder who wrote the clue.
type ClueView struct {
	EncoderID       string   `json:"encoderId"`
	EncoderNickname string   `json:"encoderNickname"`
	Words           []string `json:"words"`
	TargetCode      *Code    `json:"targetCode"`
	RoundNumber     int      `json:"roundNumber"`
}

// StateFor projects the game for the given player. An unknown id gets the
// public view: no secret words, no codes.
func (that *Game) StateFor(playerID string) PlayerState {
	var (
		myTeam    = TeamNone
		nickname  string
		isEncoder bool
	)

	if player, ok := that.players[playerID]; ok {
		myTeam = player.Team
		nickname = player.Nickname
		isEncoder = player.IsEncoder
	}

	state := PlayerState{
		RoomCode:           that.roomCode,
		Phase:              that.phase,
		Players:            that.playerList(),
		RedTeam:            slices.Clone(that.red),
		BlueTeam:           slices.Clone(that.blue),
		Spectators:         slices.Clone(that.spectators),
		SecretWords:        that.secretWords.For(myTeam),
		RedIntercepts:      that.redIntercepts,
		BlueIntercepts:     that.blueIntercepts,
		RedMistakes:        that.redMistakes,
		BlueMistakes:       that.blueMistakes,
		CurrentRound:       that.currentRound,
		RedRound:           that.redRound,
		BlueRound:          that.blueRound,
		CurrentEncoderID:   that.currentEncoderID,
		CurrentEncoderTeam: that.currentEncoderTeam,
		CurrentGuesses:     guessViews(that.currentGuesses, isEncoder),
		Winner:             that.winner,
		UniqueCodes:        that.uniqueCodes,
		MessageLog:         slices.Clone(that.messages),
		RoundsHistory:      make([]RoundView, 0, len(that.history)),
		MyTeam:             myTeam,
		MyNickname:         nickname,
		IsEncoder:          isEncoder,
	}

	if isEncoder && that.currentCode != nil {
		code := *that.currentCode
		state.CurrentCode = &code
	}

	if clue := that.currentClue; clue != nil {
		state.CurrentClue = &ClueView{
			EncoderID:       clue.EncoderID,
			EncoderNickname: clue.EncoderNickname,
			Words:           slices.Clone(clue.Words),
			RoundNumber:     clue.RoundNumber,
		}

		if playerID == clue.EncoderID {
			target := clue.TargetCode
			state.CurrentClue.TargetCode = &target
		}
	}

	for _, entry := range that.history {
		state.RoundsHistory = append(state.RoundsHistory, entry.ViewFor(myTeam))
	}

	return state
}

// playerList orders players by roster: red, then blue, then spectators.
func (that *Game) playerList() []Player {
	players := make([]Player, 0, len(that.players))

	for _, roster := range [][]string{that.red, that.blue, that.spectators} {
		for _, id := range roster {
			if player, ok := that.players[id]; ok {
				players = append(players, *player)
			}
		}
	}

	return players
}

// GameSummary is the record archived once a game ends.
type GameSummary struct {
	RoomCode       string    `json:"roomCode"`
	Winner         Team      `json:"winner"`
	RedIntercepts  int       `json:"redIntercepts"`
	BlueIntercepts int       `json:"blueIntercepts"`
	RedMistakes    int       `json:"redMistakes"`
	BlueMistakes   int       `json:"blueMistakes"`
	RoundsPlayed   int       `json:"roundsPlayed"`
	RedTeam        []string  `json:"redTeam"`
	BlueTeam       []string  `json:"blueTeam"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// Summary returns the result of a finished game, or false while it is still
// running.
func (that *Game) Summary() (*GameSummary, bool) {
	if that.phase != PhaseGameOver {
		return nil, false
	}

	return &GameSummary{
		RoomCode:       that.roomCode,
		Winner:         that.winner,
		RedIntercepts:  that.redIntercepts,
		BlueIntercepts: that.blueIntercepts,
		RedMistakes:    that.redMistakes,
		BlueMistakes:   that.blueMistakes,
		RoundsPlayed:   that.currentRound,
		RedTeam:        that.nicknames(that.red),
		BlueTeam:       that.nicknames(that.blue),
		FinishedAt:     that.finishedAt,
	}, true
}

func (that *Game) nicknames(ids []string) []string {
	names := make([]string, 0, len(ids))

	for _, id := range ids {
		if player, ok := that.players[id]; ok {
			names = append(names, player.Nickname)
		}
	}

	return names
}
