package entity

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
)

var testWords = []string{
	"apple", "river", "castle", "rocket", "piano", "forest", "mirror", "tiger", "cloud", "anchor",
}

type seat struct {
	id       string
	nickname string
	team     Team
}

var defaultSeats = []seat{
	{id: "r1", nickname: "Alice", team: TeamRed},
	{id: "r2", nickname: "Bob", team: TeamRed},
	{id: "b1", nickname: "Carol", team: TeamBlue},
	{id: "b2", nickname: "Dave", team: TeamBlue},
}

func newTestGame(t *testing.T, seats []seat) *Game {
	t.Helper()

	game := NewGame("ABC123", testWords,
		WithRand(rand.New(rand.NewPCG(42, 1024))),
		WithClock(quartz.NewMock(t)),
	)

	for _, s := range seats {
		game.AddPlayer(s.id, s.nickname)
		require.NoError(t, game.JoinTeam(s.id, s.team))
	}

	return game
}

func newStartedGame(t *testing.T) *Game {
	t.Helper()

	game := newTestGame(t, defaultSeats)
	require.NoError(t, game.StartGame(true))

	return game
}

func otherCode(code Code) Code {
	for _, candidate := range AllCodes() {
		if candidate != code {
			return candidate
		}
	}
	panic("no other code")
}

func digitsOf(code Code) []int {
	return code[:]
}

// playOwnRound finishes the current round with the encoder's own team
// reporting the given result.
func playOwnRound(t *testing.T, game *Game, guessed bool) {
	t.Helper()

	encoder := game.currentEncoderID
	require.NoError(t, game.SubmitClue(encoder, []string{"one", "two", "three"}))
	require.NoError(t, game.ConfirmOwnGuess(encoder, guessed))
}

func TestGame_StartGame(t *testing.T) {
	t.Run("Refuses to start without two players per team", func(t *testing.T) {
		// Given: a game where blue has only one player
		game := newTestGame(t, defaultSeats[:3])

		// When: starting the game
		err := game.StartGame(true)

		// Then: it fails, stays waiting and explains why in the log
		require.ErrorIs(t, err, apperror.ErrNotEnoughPlayers)
		assert.Equal(t, PhaseWaiting, game.Phase())
		assert.Contains(t, game.Messages(), "Need at least 2 players per team to start")
	})

	t.Run("Refuses to start with too few words", func(t *testing.T) {
		// Given: a game with a tiny word bank
		game := NewGame("ABC123", testWords[:5], WithClock(quartz.NewMock(t)))
		for _, s := range defaultSeats {
			game.AddPlayer(s.id, s.nickname)
			require.NoError(t, game.JoinTeam(s.id, s.team))
		}

		// When: starting the game
		err := game.StartGame(true)

		// Then: the word bank is reported as too small
		require.ErrorIs(t, err, apperror.ErrNotEnoughWords)
		assert.Equal(t, PhaseWaiting, game.Phase())
	})

	t.Run("Deals words and opens red's first round", func(t *testing.T) {
		// Given: two full teams
		game := newTestGame(t, defaultSeats)

		// When: starting the game
		require.NoError(t, game.StartGame(true))

		// Then: each team holds 4 distinct words from the bank
		words := append(game.secretWords.For(TeamRed), game.secretWords.For(TeamBlue)...)
		require.Len(t, words, 8)
		seen := make(map[string]struct{})
		for _, word := range words {
			assert.Contains(t, testWords, word)
			seen[word] = struct{}{}
		}
		assert.Len(t, seen, 8)

		// And: red's first encoder is the first player to join red
		assert.Equal(t, PhaseEncoding, game.Phase())
		assert.Equal(t, 1, game.currentRound)
		assert.Equal(t, TeamRed, game.currentEncoderTeam)
		assert.Equal(t, "r1", game.currentEncoderID)
		require.NotNil(t, game.currentCode)
		assert.True(t, game.currentCode.IsValid())
		require.Len(t, game.history, 1)
		assert.Equal(t, 1, game.history[0].RoundNum)

		encoders := 0
		for _, player := range game.players {
			if player.IsEncoder {
				encoders++
			}
		}
		assert.Equal(t, 1, encoders)
	})

	t.Run("Restarting resets counters and history", func(t *testing.T) {
		// Given: a game with a mistake on record
		game := newStartedGame(t)
		playOwnRound(t, game, false)

		// When: starting again
		require.NoError(t, game.StartGame(false))

		// Then: everything is back to round 1
		assert.Zero(t, game.redMistakes)
		assert.Equal(t, 1, game.currentRound)
		assert.Equal(t, 1, game.redRound)
		assert.Zero(t, game.blueRound)
		assert.Len(t, game.history, 1)
		assert.False(t, game.uniqueCodes)
	})
}

func TestGame_Rosters(t *testing.T) {
	t.Run("New players start as spectators", func(t *testing.T) {
		// Given: an empty game
		game := newTestGame(t, nil)

		// When: a player joins
		player := game.AddPlayer("p1", "Eve")

		// Then: they watch until they pick a team
		assert.Equal(t, TeamSpectator, player.Team)
		assert.True(t, player.Connected)
		assert.Equal(t, []string{"p1"}, game.spectators)
		assert.Contains(t, game.Messages(), "Eve joined the game")
	})

	t.Run("JoinTeam keeps a player on exactly one roster", func(t *testing.T) {
		// Given: a player on red
		game := newTestGame(t, defaultSeats[:1])

		// When: they move to blue
		require.NoError(t, game.JoinTeam("r1", TeamBlue))

		// Then: only blue lists them
		assert.Empty(t, game.red)
		assert.Equal(t, []string{"r1"}, game.blue)
		assert.Empty(t, game.spectators)
		assert.Equal(t, TeamBlue, game.players["r1"].Team)
	})

	t.Run("JoinTeam rejects unknown players and teams", func(t *testing.T) {
		game := newTestGame(t, defaultSeats[:1])

		assert.ErrorIs(t, game.JoinTeam("ghost", TeamRed), apperror.ErrPlayerNotFound)
		assert.ErrorIs(t, game.JoinTeam("r1", Team("green")), apperror.ErrInvalidTeam)
	})

	t.Run("RemovePlayer ignores unknown ids", func(t *testing.T) {
		// Given: a game with players
		game := newTestGame(t, defaultSeats)
		before := len(game.Messages())

		// When: removing somebody who never joined
		game.RemovePlayer("ghost")

		// Then: nothing changes
		assert.Equal(t, 4, game.PlayerCount())
		assert.Len(t, game.Messages(), before)
	})

	t.Run("RemovePlayer drops the player everywhere", func(t *testing.T) {
		game := newTestGame(t, defaultSeats)

		game.RemovePlayer("r2")

		assert.False(t, game.HasPlayer("r2"))
		assert.Equal(t, []string{"r1"}, game.red)
		assert.Contains(t, game.Messages(), "Bob left the game")
	})
}

func TestGame_SubmitClue(t *testing.T) {
	t.Run("Only the encoder may give clues", func(t *testing.T) {
		game := newStartedGame(t)

		err := game.SubmitClue("r2", []string{"a", "b", "c"})

		assert.ErrorIs(t, err, apperror.ErrNotEncoder)
		assert.Equal(t, PhaseEncoding, game.Phase())
	})

	t.Run("Exactly three words are required", func(t *testing.T) {
		game := newStartedGame(t)

		assert.ErrorIs(t, game.SubmitClue("r1", []string{"a", "b"}), apperror.ErrInvalidClue)
		assert.ErrorIs(t, game.SubmitClue("r1", []string{"a", "b", "c", "d"}), apperror.ErrInvalidClue)
		assert.ErrorIs(t, game.SubmitClue("r1", []string{"a", " ", "c"}), apperror.ErrInvalidClue)
		assert.Nil(t, game.currentClue)
	})

	t.Run("A valid clue moves the game to guessing", func(t *testing.T) {
		// Given: red's encoder holds a code
		game := newStartedGame(t)
		code := *game.currentCode

		// When: they submit three words
		require.NoError(t, game.SubmitClue("r1", []string{" sun ", "ink", "wave"}))

		// Then: the clue is public and recorded in history
		assert.Equal(t, PhaseGuessing, game.Phase())
		require.NotNil(t, game.currentClue)
		assert.Equal(t, []string{"sun", "ink", "wave"}, game.currentClue.Words)
		assert.Equal(t, code, game.currentClue.TargetCode)
		assert.Equal(t, "Alice", game.currentClue.EncoderNickname)
		assert.Equal(t, []string{"sun", "ink", "wave"}, game.history[0].Clues)
		assert.Contains(t, game.Messages(), "Red gave their clues (round 1)")
	})

	t.Run("A second clue in the same round is rejected", func(t *testing.T) {
		game := newStartedGame(t)
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))

		err := game.SubmitClue("r1", []string{"d", "e", "f"})

		assert.ErrorIs(t, err, apperror.ErrWrongPhase)
	})
}

func TestGame_MakeGuess(t *testing.T) {
	newGuessingGame := func(t *testing.T) *Game {
		t.Helper()
		game := newStartedGame(t)
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))
		return game
	}

	t.Run("Guesses are only accepted while guessing", func(t *testing.T) {
		game := newStartedGame(t)

		err := game.MakeGuess("b1", []int{1, 2, 3}, TeamBlue)

		assert.ErrorIs(t, err, apperror.ErrWrongPhase)
	})

	t.Run("Malformed codes are rejected", func(t *testing.T) {
		game := newGuessingGame(t)

		assert.ErrorIs(t, game.MakeGuess("b1", []int{1, 1, 2}, TeamBlue), apperror.ErrInvalidCode)
		assert.ErrorIs(t, game.MakeGuess("b1", []int{1, 2, 9}, TeamBlue), apperror.ErrInvalidCode)
		assert.Empty(t, game.currentGuesses)
	})

	t.Run("The encoding team cannot guess", func(t *testing.T) {
		game := newGuessingGame(t)

		assert.ErrorIs(t, game.MakeGuess("b1", []int{1, 2, 3}, TeamRed), apperror.ErrOwnTeamGuess)
		assert.ErrorIs(t, game.MakeGuess("r2", []int{1, 2, 3}, TeamBlue), apperror.ErrOwnTeamGuess)
	})

	t.Run("Spectator and unknown guesses are rejected", func(t *testing.T) {
		game := newGuessingGame(t)

		assert.ErrorIs(t, game.MakeGuess("b1", []int{1, 2, 3}, TeamSpectator), apperror.ErrInvalidTeam)
		assert.ErrorIs(t, game.MakeGuess("ghost", []int{1, 2, 3}, TeamBlue), apperror.ErrPlayerNotFound)
	})

	t.Run("Players only guess for their own team", func(t *testing.T) {
		// Given: a spectator watching red's first round
		game := newTestGame(t, append(defaultSeats, seat{id: "s1", nickname: "Eve", team: TeamSpectator}))
		require.NoError(t, game.StartGame(true))
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))
		code := *game.currentCode

		// When: the spectator guesses the right code for blue
		err := game.MakeGuess("s1", code[:], TeamBlue)

		// Then: nothing is recorded
		require.ErrorIs(t, err, apperror.ErrInvalidTeam)
		assert.ErrorIs(t, game.MakeGuess("s1", code[:], TeamNone), apperror.ErrInvalidTeam)
		assert.Empty(t, game.currentGuesses)
		assert.Empty(t, game.history[0].Guesses)
	})

	t.Run("Without a team the guesser's own team is used", func(t *testing.T) {
		game := newGuessingGame(t)

		require.NoError(t, game.MakeGuess("b1", []int{1, 2, 3}, TeamNone))
		assert.Equal(t, TeamBlue, game.currentGuesses[0].Team)

		assert.ErrorIs(t, game.MakeGuess("r2", []int{1, 2, 3}, TeamNone), apperror.ErrOwnTeamGuess)
	})

	t.Run("Guesses are recorded with their correctness", func(t *testing.T) {
		// Given: blue guesses during red's round
		game := newGuessingGame(t)
		code := *game.currentCode

		// When: one wrong and one right guess arrive
		require.NoError(t, game.MakeGuess("b1", digitsOf(otherCode(code)), TeamBlue))
		require.NoError(t, game.MakeGuess("b2", code[:], TeamBlue))

		// Then: both are kept in order
		require.Len(t, game.currentGuesses, 2)
		assert.False(t, game.currentGuesses[0].Correct)
		assert.True(t, game.currentGuesses[1].Correct)
		assert.Len(t, game.history[0].Guesses, 2)
		assert.Equal(t, PhaseGuessing, game.Phase())
	})
}

func TestGame_ConfirmOwnGuess(t *testing.T) {
	t.Run("Requires the encoder during guessing", func(t *testing.T) {
		game := newStartedGame(t)

		assert.ErrorIs(t, game.ConfirmOwnGuess("r1", true), apperror.ErrWrongPhase)

		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))
		assert.ErrorIs(t, game.ConfirmOwnGuess("r2", true), apperror.ErrNotEncoder)
	})

	t.Run("A success hands the next round to the other team", func(t *testing.T) {
		// Given: red in its first round
		game := newStartedGame(t)

		// When: red decodes its own code
		playOwnRound(t, game, true)

		// Then: blue's first encoder starts round 2
		assert.Equal(t, PhaseEncoding, game.Phase())
		assert.Equal(t, 2, game.currentRound)
		assert.Equal(t, TeamBlue, game.currentEncoderTeam)
		assert.Equal(t, "b1", game.currentEncoderID)
		assert.Nil(t, game.currentClue)
		assert.Empty(t, game.currentGuesses)
		assert.Zero(t, game.redMistakes)
		assert.True(t, game.history[0].Completed)
		assert.True(t, game.history[0].OwnTeamGuessed)
	})

	t.Run("A miss costs a mistake", func(t *testing.T) {
		game := newStartedGame(t)

		playOwnRound(t, game, false)

		assert.Equal(t, 1, game.redMistakes)
		assert.True(t, game.history[0].Mistake)
		assert.Contains(t, game.Messages(), "Red failed to decode their own code. Penalty! Round over")
	})

	t.Run("Two mistakes hand the game to the other team", func(t *testing.T) {
		// Given: red already has one mistake
		game := newStartedGame(t)
		playOwnRound(t, game, false)
		playOwnRound(t, game, true)

		// When: red misses again
		playOwnRound(t, game, false)

		// Then: blue wins and nobody is encoding
		assert.Equal(t, PhaseGameOver, game.Phase())
		assert.Equal(t, TeamBlue, game.Winner())
		assert.True(t, game.IsFinished())
		for _, player := range game.players {
			assert.False(t, player.IsEncoder)
		}
		assert.Contains(t, game.Messages(), "Blue team wins!")

		// And: the game no longer accepts round actions
		assert.ErrorIs(t, game.SubmitClue(game.currentEncoderID, []string{"a", "b", "c"}), apperror.ErrWrongPhase)
		assert.ErrorIs(t, game.ConfirmOwnGuess(game.currentEncoderID, true), apperror.ErrWrongPhase)
	})
}

func TestGame_ConfirmIntercept(t *testing.T) {
	t.Run("Interception is impossible in a team's first round", func(t *testing.T) {
		// Given: blue guessed red's first code correctly
		game := newStartedGame(t)
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))
		code := *game.currentCode
		require.NoError(t, game.MakeGuess("b1", code[:], TeamBlue))

		// When: the encoder confirms the interception
		err := game.ConfirmIntercept("r1", TeamBlue)

		// Then: it is refused, logged, and the round stays open
		require.ErrorIs(t, err, apperror.ErrFirstRoundIntercept)
		assert.Zero(t, game.blueIntercepts)
		assert.Equal(t, PhaseGuessing, game.Phase())
		assert.Contains(t, game.Messages(), "Interception is impossible in Red's first round")
	})

	t.Run("Requires a correct guess by the intercepting team", func(t *testing.T) {
		// Given: red's second round with only a wrong blue guess
		game := newStartedGame(t)
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		require.NoError(t, game.SubmitClue("r2", []string{"a", "b", "c"}))
		require.NoError(t, game.MakeGuess("b1", digitsOf(otherCode(*game.currentCode)), TeamBlue))

		// When: the encoder confirms the interception anyway
		err := game.ConfirmIntercept("r2", TeamBlue)

		// Then: nothing is scored
		require.ErrorIs(t, err, apperror.ErrNoCorrectGuess)
		assert.Zero(t, game.blueIntercepts)
		assert.Equal(t, PhaseGuessing, game.Phase())
	})

	t.Run("The first round lockout comes before the team check", func(t *testing.T) {
		game := newStartedGame(t)
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))

		err := game.ConfirmIntercept("r1", TeamRed)

		require.ErrorIs(t, err, apperror.ErrFirstRoundIntercept)
		assert.Contains(t, game.Messages(), "Interception is impossible in Red's first round")
	})

	t.Run("The encoding team cannot intercept itself", func(t *testing.T) {
		game := newStartedGame(t)
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		require.NoError(t, game.SubmitClue("r2", []string{"a", "b", "c"}))

		assert.ErrorIs(t, game.ConfirmIntercept("r2", TeamRed), apperror.ErrInvalidTeam)
		assert.ErrorIs(t, game.ConfirmIntercept("r2", TeamSpectator), apperror.ErrInvalidTeam)
	})

	t.Run("A valid interception scores and advances", func(t *testing.T) {
		// Given: red's second round and a correct blue guess
		game := newStartedGame(t)
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		require.NoError(t, game.SubmitClue("r2", []string{"a", "b", "c"}))
		code := *game.currentCode
		require.NoError(t, game.MakeGuess("b2", code[:], TeamBlue))

		// When: red's encoder confirms
		require.NoError(t, game.ConfirmIntercept("r2", TeamBlue))

		// Then: blue scores an interception and round 4 belongs to blue
		assert.Equal(t, 1, game.blueIntercepts)
		assert.Equal(t, 4, game.currentRound)
		assert.Equal(t, "b2", game.currentEncoderID)

		entry := game.history[2]
		assert.True(t, entry.Completed)
		assert.True(t, entry.Intercepted)
		assert.Equal(t, TeamBlue, entry.InterceptedBy)
		assert.Contains(t, game.Messages(), fmt.Sprintf("Blue intercepted the code of Red! The code was %s", code))
	})

	t.Run("Two interceptions win the game", func(t *testing.T) {
		// Given: blue already intercepted once
		game := newStartedGame(t)
		game.blueIntercepts = 1
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		require.NoError(t, game.SubmitClue("r2", []string{"a", "b", "c"}))
		code := *game.currentCode
		require.NoError(t, game.MakeGuess("b1", code[:], TeamBlue))

		// When: the second interception is confirmed
		require.NoError(t, game.ConfirmIntercept("r2", TeamBlue))

		// Then: blue wins
		assert.Equal(t, PhaseGameOver, game.Phase())
		assert.Equal(t, TeamBlue, game.Winner())

		summary, ok := game.Summary()
		require.True(t, ok)
		assert.Equal(t, TeamBlue, summary.Winner)
		assert.Equal(t, 2, summary.BlueIntercepts)
		assert.Equal(t, 3, summary.RoundsPlayed)
		assert.Equal(t, []string{"Alice", "Bob"}, summary.RedTeam)
		assert.Equal(t, []string{"Carol", "Dave"}, summary.BlueTeam)
	})
}

func TestGame_RedWins(t *testing.T) {
	assertRedWon := func(t *testing.T, game *Game, round int) {
		t.Helper()

		assert.Equal(t, PhaseGameOver, game.Phase())
		assert.Equal(t, TeamRed, game.Winner())
		assert.Equal(t, round, game.currentRound)
		assert.Len(t, game.history, round)
		assert.Contains(t, game.Messages(), "Red team wins!")
	}

	t.Run("Blue missing its own code twice", func(t *testing.T) {
		// Given: blue already missed once in round 2
		game := newStartedGame(t)
		playOwnRound(t, game, true)
		playOwnRound(t, game, false)
		playOwnRound(t, game, true)
		require.Equal(t, TeamBlue, game.currentEncoderTeam)

		// When: blue misses again in round 4
		playOwnRound(t, game, false)

		// Then: red wins and no fifth round opens
		assert.Equal(t, 2, game.blueMistakes)
		assertRedWon(t, game, 4)
	})

	t.Run("Red intercepting twice", func(t *testing.T) {
		// Given: red intercepted once and blue's second round is being guessed
		game := newStartedGame(t)
		game.redIntercepts = 1
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		require.NoError(t, game.SubmitClue("b2", []string{"a", "b", "c"}))
		code := *game.currentCode
		require.NoError(t, game.MakeGuess("r1", code[:], TeamRed))

		// When: blue's encoder confirms the interception
		require.NoError(t, game.ConfirmIntercept("b2", TeamRed))

		// Then: red wins and no fifth round opens
		assert.Equal(t, 2, game.redIntercepts)
		assertRedWon(t, game, 4)
	})
}

func TestGame_ResolveRound(t *testing.T) {
	t.Run("Own team outcomes delegate to ConfirmOwnGuess", func(t *testing.T) {
		game := newStartedGame(t)
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))

		require.NoError(t, game.ResolveRound("r1", OutcomeOwnTeamMissed))

		assert.Equal(t, 1, game.redMistakes)
		assert.Equal(t, TeamBlue, game.currentEncoderTeam)
	})

	t.Run("Enemy interception still needs a correct guess", func(t *testing.T) {
		game := newStartedGame(t)
		playOwnRound(t, game, true)
		playOwnRound(t, game, true)
		require.NoError(t, game.SubmitClue("r2", []string{"a", "b", "c"}))

		err := game.ResolveRound("r2", OutcomeEnemyIntercepted)

		assert.ErrorIs(t, err, apperror.ErrNoCorrectGuess)
	})

	t.Run("Unknown outcomes are rejected", func(t *testing.T) {
		game := newStartedGame(t)
		require.NoError(t, game.SubmitClue("r1", []string{"a", "b", "c"}))

		assert.ErrorIs(t, game.ResolveRound("r1", RoundOutcome("draw")), apperror.ErrInvalidOutcome)

		_, err := ParseRoundOutcome("draw")
		assert.ErrorIs(t, err, apperror.ErrInvalidOutcome)
	})
}

func TestGame_RoundRotation(t *testing.T) {
	t.Run("Encoders rotate within each team by join order", func(t *testing.T) {
		// Given: a started game
		game := newStartedGame(t)
		var encoders []string

		// When: five rounds are opened
		for range 5 {
			encoders = append(encoders, game.currentEncoderID)
			playOwnRound(t, game, true)
		}

		// Then: teams alternate and each roster rotates
		assert.Equal(t, []string{"r1", "b1", "r2", "b2", "r1"}, encoders)
		assert.Equal(t, 3, game.redRound)
		assert.Equal(t, 3, game.blueRound)
	})

	t.Run("Unique codes do not repeat within a cycle", func(t *testing.T) {
		// Given: a started game with unique codes
		game := newStartedGame(t)
		cycle := len(AllCodes())

		// When: a full cycle of rounds is played
		for range cycle {
			playOwnRound(t, game, true)
		}

		// Then: the first cycle used every code once and a reset was logged
		seen := make(map[Code]struct{})
		for _, entry := range game.history[:cycle] {
			seen[entry.Code] = struct{}{}
		}
		assert.Len(t, seen, cycle)
		assert.Contains(t, game.Messages(), "All 24 codes have been used, starting a new cycle")
	})

	t.Run("An empty team roster stalls the next round", func(t *testing.T) {
		// Given: both blue players left during red's first round
		game := newStartedGame(t)
		game.RemovePlayer("b1")
		game.RemovePlayer("b2")

		// When: red finishes its round
		playOwnRound(t, game, true)

		// Then: blue's round has no encoder and no history entry
		assert.Equal(t, PhaseEncoding, game.Phase())
		assert.Equal(t, 2, game.currentRound)
		assert.Empty(t, game.currentEncoderID)
		assert.Len(t, game.history, 1)
		assert.ErrorIs(t, game.SubmitClue("r1", []string{"a", "b", "c"}), apperror.ErrNotEncoder)
	})
}

func TestGame_MessageLog(t *testing.T) {
	// Given: an empty game
	game := newTestGame(t, nil)

	// When: far more than 50 events happen
	for i := range 40 {
		id := fmt.Sprintf("p%d", i)
		game.AddPlayer(id, id)
		game.RemovePlayer(id)
	}

	// Then: only the latest 50 lines are kept
	messages := game.Messages()
	require.Len(t, messages, MessageLogLimit)
	assert.Equal(t, "p39 left the game", messages[len(messages)-1])
	assert.Equal(t, "p15 joined the game", messages[0])
}
