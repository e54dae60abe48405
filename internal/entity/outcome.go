package entity

import (
	"fmt"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
)

// RoundOutcome is the encoder's one-shot verdict on a round.
type RoundOutcome string

const (
	OutcomeOwnTeamGuessed   RoundOutcome = "own_team_guessed"
	OutcomeOwnTeamMissed    RoundOutcome = "own_team_not_guessed"
	OutcomeEnemyIntercepted RoundOutcome = "enemy_team_guessed"
)

func ParseRoundOutcome(value string) (RoundOutcome, error) {
	switch outcome := RoundOutcome(value); outcome {
	case OutcomeOwnTeamGuessed, OutcomeOwnTeamMissed, OutcomeEnemyIntercepted:
		return outcome, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidOutcome, value)
	}
}
