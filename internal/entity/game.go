package entity

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
)

const (
	MinTeamSize     = 2
	WordsPerTeam    = 4
	ClueWordsCount  = 3
	WinningTokens   = 2
	MessageLogLimit = 50
)

type SecretWords struct {
	Red  []string `json:"red"`
	Blue []string `json:"blue"`
}

func (that SecretWords) For(team Team) []string {
	switch team {
	case TeamRed:
		return slices.Clone(that.Red)
	case TeamBlue:
		return slices.Clone(that.Blue)
	default:
		return nil
	}
}

type Option func(*Game)

func WithRand(rng *rand.Rand) Option {
	return func(game *Game) {
		game.rng = rng
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(game *Game) {
		game.clock = clock
	}
}

// Game is the round-lifecycle state machine of one room. It holds no lock:
// callers must serialize every call made on the same instance.
type Game struct {
	roomCode string
	words    []string
	rng      *rand.Rand
	clock    quartz.Clock

	phase   Phase
	players map[string]*Player

	red        []string
	blue       []string
	spectators []string

	secretWords SecretWords
	uniqueCodes bool
	codes       *codePicker

	redIntercepts  int
	blueIntercepts int
	redMistakes    int
	blueMistakes   int

	currentRound       int
	redRound           int
	blueRound          int
	currentEncoderID   string
	currentEncoderTeam Team
	currentCode        *Code
	currentClue        *Clue
	currentGuesses     []Guess

	winner     Team
	finishedAt time.Time

	history   []*RoundHistoryEntry
	openRound *RoundHistoryEntry
	messages  []string
}

// NewGame creates a game in the waiting phase with a private copy of words.
func NewGame(roomCode string, words []string, opts ...Option) *Game {
	game := &Game{
		roomCode:    roomCode,
		words:       slices.Clone(words),
		phase:       PhaseWaiting,
		players:     make(map[string]*Player),
		uniqueCodes: true,
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.rng == nil {
		game.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // game randomness
	}

	if game.clock == nil {
		game.clock = quartz.NewReal()
	}

	game.codes = newCodePicker(game.rng, game.uniqueCodes)

	return game
}

func (that *Game) RoomCode() string {
	return that.roomCode
}

func (that *Game) Phase() Phase {
	return that.phase
}

func (that *Game) Winner() Team {
	return that.winner
}

func (that *Game) IsFinished() bool {
	return that.phase == PhaseGameOver
}

func (that *Game) IsEmpty() bool {
	return len(that.players) == 0
}

func (that *Game) PlayerCount() int {
	return len(that.players)
}

func (that *Game) HasPlayer(id string) bool {
	_, ok := that.players[id]
	return ok
}

func (that *Game) Messages() []string {
	return slices.Clone(that.messages)
}

func (that *Game) AddPlayer(id, nickname string) *Player {
	that.detach(id)

	player := NewPlayer(id, nickname)
	that.players[id] = player
	that.spectators = append(that.spectators, id)

	that.addMessage("%s joined the game", nickname)

	return player
}

func (that *Game) RemovePlayer(id string) {
	player, ok := that.players[id]
	if !ok {
		return
	}

	that.addMessage("%s left the game", player.Nickname)

	that.detach(id)
	delete(that.players, id)
}

// SetConnected records whether the player can currently be reached.
func (that *Game) SetConnected(id string, connected bool) bool {
	player, ok := that.players[id]
	if !ok {
		return false
	}

	player.Connected = connected

	return true
}

func (that *Game) JoinTeam(id string, team Team) error {
	player, ok := that.players[id]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, id)
	}

	if !team.IsPlaying() && team != TeamSpectator {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidTeam, team)
	}

	that.detach(id)

	roster := that.roster(team)
	*roster = append(*roster, id)
	player.Team = team

	that.addMessage("%s moved to %s", player.Nickname, team.DisplayName())

	return nil
}

// StartGame deals the secret words and opens round 1. It may be called from
// any phase; a running game is discarded.
func (that *Game) StartGame(uniqueCodes bool) error {
	if len(that.red) < MinTeamSize || len(that.blue) < MinTeamSize {
		that.addMessage("Need at least %d players per team to start", MinTeamSize)
		return apperror.ErrNotEnoughPlayers
	}

	if len(that.words) < 2*WordsPerTeam {
		return fmt.Errorf("%w: have %d", apperror.ErrNotEnoughWords, len(that.words))
	}

	that.rng.Shuffle(len(that.words), func(i, j int) {
		that.words[i], that.words[j] = that.words[j], that.words[i]
	})

	that.secretWords = SecretWords{
		Red:  slices.Clone(that.words[:WordsPerTeam]),
		Blue: slices.Clone(that.words[WordsPerTeam : 2*WordsPerTeam]),
	}

	that.redIntercepts, that.blueIntercepts = 0, 0
	that.redMistakes, that.blueMistakes = 0, 0
	that.currentRound, that.redRound, that.blueRound = 0, 0, 0

	that.history = nil
	that.openRound = nil
	that.uniqueCodes = uniqueCodes
	that.codes = newCodePicker(that.rng, uniqueCodes)
	that.winner = TeamNone
	that.finishedAt = time.Time{}
	that.clearCurrentRound()

	that.phase = PhaseEncoding
	that.addMessage("Game started! Secret words have been dealt")
	that.advanceRound()

	return nil
}

func (that *Game) SubmitClue(playerID string, words []string) error {
	if err := that.checkEncoder(playerID, PhaseEncoding); err != nil {
		return err
	}

	clueWords, err := normalizeClue(words)
	if err != nil {
		return err
	}

	encoder, ok := that.players[playerID]
	if !ok || that.currentCode == nil {
		return fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	that.currentClue = &Clue{
		EncoderID:       playerID,
		EncoderNickname: encoder.Nickname,
		Words:           clueWords,
		TargetCode:      *that.currentCode,
		RoundNumber:     that.currentRound,
	}

	if that.openRound != nil {
		that.openRound.Clues = slices.Clone(clueWords)
	}

	that.phase = PhaseGuessing
	that.addMessage("%s gave their clues (round %d)", that.currentEncoderTeam.DisplayName(), that.teamRound(that.currentEncoderTeam))

	return nil
}

// MakeGuess records a guess for the player's own team. team may be TeamNone,
// otherwise it has to match the player's team.
func (that *Game) MakeGuess(playerID string, digits []int, team Team) error {
	if that.phase != PhaseGuessing || that.currentCode == nil {
		return fmt.Errorf("%w: %s", apperror.ErrWrongPhase, that.phase)
	}

	code, err := ParseCode(digits)
	if err != nil {
		return err
	}

	player, ok := that.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	if team == TeamNone {
		team = player.Team
	}

	if !team.IsPlaying() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidTeam, team)
	}

	if team == that.currentEncoderTeam || player.Team == that.currentEncoderTeam {
		return apperror.ErrOwnTeamGuess
	}

	if !player.Team.IsPlaying() || team != player.Team {
		return fmt.Errorf("%w: %s cannot guess for %q", apperror.ErrInvalidTeam, playerID, team)
	}

	guess := Guess{
		PlayerID: playerID,
		Team:     team,
		Code:     code,
		Correct:  code == *that.currentCode,
	}

	that.currentGuesses = append(that.currentGuesses, guess)
	if that.openRound != nil {
		that.openRound.Guesses = append(that.openRound.Guesses, guess)
	}

	that.addMessage("%s made a guess for %s", player.Nickname, team.DisplayName())

	return nil
}

// ConfirmIntercept is called by the encoder to honour an interception claim.
// The claim stands only if the intercepting team recorded a correct guess.
func (that *Game) ConfirmIntercept(encoderID string, interceptingTeam Team) error {
	if err := that.checkEncoder(encoderID, PhaseGuessing); err != nil {
		return err
	}

	if that.teamRound(that.currentEncoderTeam) == 1 {
		that.addMessage("Interception is impossible in %s's first round", that.currentEncoderTeam.DisplayName())
		return apperror.ErrFirstRoundIntercept
	}

	if !interceptingTeam.IsPlaying() || interceptingTeam == that.currentEncoderTeam {
		return fmt.Errorf("%w: %q cannot intercept", apperror.ErrInvalidTeam, interceptingTeam)
	}

	if !that.hasCorrectGuess(interceptingTeam) {
		return apperror.ErrNoCorrectGuess
	}

	if interceptingTeam == TeamRed {
		that.redIntercepts++
	} else {
		that.blueIntercepts++
	}

	if entry := that.openRound; entry != nil {
		entry.Intercepted = true
		entry.InterceptedBy = interceptingTeam
		entry.Completed = true
	}

	that.addMessage("%s intercepted the code of %s! The code was %s",
		interceptingTeam.DisplayName(), that.currentEncoderTeam.DisplayName(), that.currentCode)

	that.finishRound()

	return nil
}

// ConfirmOwnGuess is the encoder's report of whether their own team decoded
// the clues. A miss costs the encoding team a mistake token.
func (that *Game) ConfirmOwnGuess(encoderID string, guessedCorrectly bool) error {
	if err := that.checkEncoder(encoderID, PhaseGuessing); err != nil {
		return err
	}

	team := that.currentEncoderTeam

	if entry := that.openRound; entry != nil {
		entry.OwnTeamGuessed = guessedCorrectly
		entry.Mistake = !guessedCorrectly
		entry.Completed = true
	}

	if guessedCorrectly {
		that.addMessage("%s decoded their own code. Round over", team.DisplayName())
	} else {
		if team == TeamRed {
			that.redMistakes++
		} else {
			that.blueMistakes++
		}
		that.addMessage("%s failed to decode their own code. Penalty! Round over", team.DisplayName())
	}

	that.finishRound()

	return nil
}

// ResolveRound maps the single-outcome report of older clients onto the
// guess-validated operations.
func (that *Game) ResolveRound(encoderID string, outcome RoundOutcome) error {
	switch outcome {
	case OutcomeOwnTeamGuessed:
		return that.ConfirmOwnGuess(encoderID, true)
	case OutcomeOwnTeamMissed:
		return that.ConfirmOwnGuess(encoderID, false)
	case OutcomeEnemyIntercepted:
		return that.ConfirmIntercept(encoderID, that.currentEncoderTeam.Opponent())
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidOutcome, outcome)
	}
}

func (that *Game) checkEncoder(playerID string, phase Phase) error {
	if that.phase != phase {
		return fmt.Errorf("%w: %s", apperror.ErrWrongPhase, that.phase)
	}

	if that.currentEncoderID == "" || playerID != that.currentEncoderID {
		return apperror.ErrNotEncoder
	}

	return nil
}

// advanceRound opens the next round. Odd rounds belong to red, even rounds to
// blue, and the encoder rotates through the team roster in join order.
func (that *Game) advanceRound() {
	that.currentRound++

	team := TeamBlue
	if that.currentRound%2 == 1 {
		team = TeamRed
	}
	that.currentEncoderTeam = team

	var teamRound int
	if team == TeamRed {
		that.redRound++
		teamRound = that.redRound
	} else {
		that.blueRound++
		teamRound = that.blueRound
	}

	for _, player := range that.players {
		player.IsEncoder = false
	}

	roster := *that.roster(team)
	if len(roster) == 0 {
		return
	}

	encoder := that.players[roster[(teamRound-1)%len(roster)]]
	encoder.IsEncoder = true
	that.currentEncoderID = encoder.ID

	code, cycleReset := that.codes.next()
	if cycleReset {
		that.addMessage("All %d codes have been used, starting a new cycle", len(that.codes.all))
	}
	that.currentCode = &code

	that.openRound = &RoundHistoryEntry{
		Team:      team,
		RoundNum:  teamRound,
		EncoderID: encoder.ID,
		Encoder:   encoder.Nickname,
		Code:      code,
		Timestamp: that.clock.Now(),
	}
	that.history = append(that.history, that.openRound)

	that.addMessage("Round %d (%s). %s is encoding", teamRound, team.DisplayName(), encoder.Nickname)
}

// finishRound ends the game if a team has won, otherwise opens the next round.
func (that *Game) finishRound() {
	if winner := that.checkWinner(); winner != TeamNone {
		that.phase = PhaseGameOver
		that.winner = winner
		that.finishedAt = that.clock.Now()

		for _, player := range that.players {
			player.IsEncoder = false
		}

		that.addMessage("%s team wins!", winner.DisplayName())

		return
	}

	that.clearCurrentRound()
	that.phase = PhaseEncoding
	that.advanceRound()
}

func (that *Game) checkWinner() Team {
	switch {
	case that.blueMistakes >= WinningTokens || that.redIntercepts >= WinningTokens:
		return TeamRed
	case that.redMistakes >= WinningTokens || that.blueIntercepts >= WinningTokens:
		return TeamBlue
	default:
		return TeamNone
	}
}

func (that *Game) hasCorrectGuess(team Team) bool {
	return slices.ContainsFunc(that.currentGuesses, func(guess Guess) bool {
		return guess.Team == team && guess.Correct
	})
}

func (that *Game) clearCurrentRound() {
	that.currentClue = nil
	that.currentGuesses = nil
	that.currentCode = nil
	that.currentEncoderID = ""
}

func (that *Game) teamRound(team Team) int {
	if team == TeamRed {
		return that.redRound
	}
	return that.blueRound
}

func (that *Game) roster(team Team) *[]string {
	switch team {
	case TeamRed:
		return &that.red
	case TeamBlue:
		return &that.blue
	default:
		return &that.spectators
	}
}

// detach removes the id from all three rosters.
func (that *Game) detach(id string) {
	isID := func(member string) bool { return member == id }

	that.red = slices.DeleteFunc(that.red, isID)
	that.blue = slices.DeleteFunc(that.blue, isID)
	that.spectators = slices.DeleteFunc(that.spectators, isID)
}

func (that *Game) addMessage(format string, args ...any) {
	that.messages = append(that.messages, fmt.Sprintf(format, args...))

	if overflow := len(that.messages) - MessageLogLimit; overflow > 0 {
		that.messages = slices.Clone(that.messages[overflow:])
	}
}

func normalizeClue(words []string) ([]string, error) {
	if len(words) != ClueWordsCount {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidClue, len(words))
	}

	clue := make([]string, 0, ClueWordsCount)
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			return nil, fmt.Errorf("%w: blank word", apperror.ErrInvalidClue)
		}
		clue = append(clue, word)
	}

	return clue, nil
}
