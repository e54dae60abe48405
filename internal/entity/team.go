package entity

import (
	"fmt"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
)

type Team string

const (
	TeamNone      Team = ""
	TeamRed       Team = "red"
	TeamBlue      Team = "blue"
	TeamSpectator Team = "spectator"
)

// ParseTeam accepts the wire value of a team.
func ParseTeam(value string) (Team, error) {
	switch team := Team(value); team {
	case TeamRed, TeamBlue, TeamSpectator:
		return team, nil
	default:
		return TeamNone, fmt.Errorf("%w: %q", apperror.ErrInvalidTeam, value)
	}
}

// IsPlaying reports whether the team takes part in rounds.
func (that Team) IsPlaying() bool {
	return that == TeamRed || that == TeamBlue
}

func (that Team) Opponent() Team {
	switch that {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamNone
	}
}

func (that Team) DisplayName() string {
	switch that {
	case TeamRed:
		return "Red"
	case TeamBlue:
		return "Blue"
	case TeamSpectator:
		return "Spectators"
	default:
		return "nobody"
	}
}

type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseSetup    Phase = "setup" // declared for clients, never entered
	PhaseEncoding Phase = "encoding"
	PhaseGuessing Phase = "guessing"
	PhaseReveal   Phase = "reveal" // declared for clients, never entered
	PhaseGameOver Phase = "game_over"
)
