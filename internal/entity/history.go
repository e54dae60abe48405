package entity

import "time"

// RoundHistoryEntry records one team-round from the moment it opens.
type RoundHistoryEntry struct {
	Team           Team
	RoundNum       int
	EncoderID      string
	Encoder        string
	Code           Code
	Clues          []string
	Guesses        []Guess
	Intercepted    bool
	InterceptedBy  Team
	OwnTeamGuessed bool
	Mistake        bool
	Completed      bool
	Timestamp      time.Time
}

// RoundView is a history entry as seen by one team.
type RoundView struct {
	Team           Team        `json:"team"`
	RoundNum       int         `json:"roundNum"`
	Encoder        string      `json:"encoder"`
	Clues          []string    `json:"clues"`
	Guesses        []GuessView `json:"guesses"`
	Code           *Code       `json:"code"`
	Intercepted    *bool       `json:"intercepted"`
	InterceptedBy  *Team       `json:"interceptedBy"`
	OwnTeamGuessed *bool       `json:"ownTeamGuessed"`
	Mistake        *bool       `json:"mistake"`
	Completed      bool        `json:"completed"`
	Timestamp      time.Time   `json:"timestamp"`
}

// GuessView hides correctness wherever the code itself is hidden.
type GuessView struct {
	PlayerID string `json:"playerId"`
	Team     Team   `json:"team"`
	Code     Code   `json:"code"`
	Correct  *bool  `json:"correct"`
}

// CodeVisibleTo reports whether the requesting team may see this round's code:
// only the encoding team, and only once the round is over.
func (that *RoundHistoryEntry) CodeVisibleTo(team Team) bool {
	return that.Completed && team == that.Team
}

// ViewFor projects the entry for a requester on the given team. Outcome
// fields stay nil while the round is open, whoever asks.
func (that *RoundHistoryEntry) ViewFor(team Team) RoundView {
	codeVisible := that.CodeVisibleTo(team)

	view := RoundView{
		Team:      that.Team,
		RoundNum:  that.RoundNum,
		Encoder:   that.Encoder,
		Clues:     append([]string(nil), that.Clues...),
		Guesses:   guessViews(that.Guesses, codeVisible),
		Completed: that.Completed,
		Timestamp: that.Timestamp,
	}

	if codeVisible {
		code := that.Code
		view.Code = &code
	}

	if that.Completed {
		intercepted, ownTeamGuessed, mistake := that.Intercepted, that.OwnTeamGuessed, that.Mistake
		view.Intercepted = &intercepted
		view.OwnTeamGuessed = &ownTeamGuessed
		view.Mistake = &mistake

		if that.Intercepted {
			by := that.InterceptedBy
			view.InterceptedBy = &by
		}
	}

	return view
}

func guessViews(guesses []Guess, showCorrectness bool) []GuessView {
	views := make([]GuessView, 0, len(guesses))

	for _, guess := range guesses {
		view := GuessView{
			PlayerID: guess.PlayerID,
			Team:     guess.Team,
			Code:     guess.Code,
		}

		if showCorrectness {
			correct := guess.Correct
			view.Correct = &correct
		}

		views = append(views, view)
	}

	return views
}
