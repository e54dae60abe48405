package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
	"github.com/rocketscienceinc/decrypto-backend/internal/pkg"
)

const maxNicknameLength = 32

type gameArchive interface {
	Save(ctx context.Context, summary *entity.GameSummary) error
}

// GameManager is the single entry point for player actions on rooms.
type GameManager struct {
	logger  *slog.Logger
	rooms   *RoomRegistry
	archive gameArchive
}

func NewGameManager(logger *slog.Logger, rooms *RoomRegistry, archive gameArchive) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		rooms:   rooms,
		archive: archive,
	}
}

func (that *GameManager) CreateRoom(_ context.Context) string {
	room := that.rooms.CreateRoom()

	that.logger.Info("room created", "room", room.Code())

	return room.Code()
}

// JoinRoom adds a new spectator to the room and returns them with a fresh id.
func (that *GameManager) JoinRoom(_ context.Context, roomCode, nickname string) (*entity.Player, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, apperror.ErrEmptyNickname
	}

	if runes := []rune(nickname); len(runes) > maxNicknameLength {
		nickname = string(runes[:maxNicknameLength])
	}

	room, err := that.rooms.GetRoom(roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	var player entity.Player
	_ = room.Do(func(game *entity.Game) error {
		player = *game.AddPlayer(pkg.GeneratePlayerID(), nickname)
		return nil
	})

	that.logger.Info("player joined", "room", room.Code(), "player", player.ID)

	return &player, nil
}

func (that *GameManager) LeaveRoom(ctx context.Context, roomCode, playerID string) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		game.RemovePlayer(playerID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	return nil
}

func (that *GameManager) JoinTeam(ctx context.Context, roomCode, playerID string, team entity.Team) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		return game.JoinTeam(playerID, team)
	})
	if err != nil {
		return fmt.Errorf("failed to join team: %w", err)
	}

	return nil
}

func (that *GameManager) StartGame(ctx context.Context, roomCode, playerID string, uniqueCodes bool) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		if !game.HasPlayer(playerID) {
			return fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
		}

		return game.StartGame(uniqueCodes)
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return nil
}

func (that *GameManager) SubmitClue(ctx context.Context, roomCode, playerID string, words []string) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		return game.SubmitClue(playerID, words)
	})
	if err != nil {
		return fmt.Errorf("failed to submit clue: %w", err)
	}

	return nil
}

func (that *GameManager) MakeGuess(ctx context.Context, roomCode, playerID string, code []int, team entity.Team) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		return game.MakeGuess(playerID, code, team)
	})
	if err != nil {
		return fmt.Errorf("failed to make guess: %w", err)
	}

	return nil
}

func (that *GameManager) ConfirmIntercept(ctx context.Context, roomCode, playerID string, team entity.Team) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		return game.ConfirmIntercept(playerID, team)
	})
	if err != nil {
		return fmt.Errorf("failed to confirm interception: %w", err)
	}

	return nil
}

func (that *GameManager) ConfirmOwnGuess(ctx context.Context, roomCode, playerID string, guessed bool) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		return game.ConfirmOwnGuess(playerID, guessed)
	})
	if err != nil {
		return fmt.Errorf("failed to confirm own guess: %w", err)
	}

	return nil
}

func (that *GameManager) ResolveRound(ctx context.Context, roomCode, playerID string, outcome entity.RoundOutcome) error {
	err := that.play(ctx, roomCode, func(game *entity.Game) error {
		return game.ResolveRound(playerID, outcome)
	})
	if err != nil {
		return fmt.Errorf("failed to resolve round: %w", err)
	}

	return nil
}

// MarkDisconnected flags a player whose connection could not be written to.
func (that *GameManager) MarkDisconnected(_ context.Context, roomCode, playerID string) {
	room, err := that.rooms.GetRoom(roomCode)
	if err != nil {
		return
	}

	_ = room.Do(func(game *entity.Game) error {
		game.SetConnected(playerID, false)
		return nil
	})
}

func (that *GameManager) State(_ context.Context, roomCode, playerID string) (entity.PlayerState, error) {
	room, err := that.rooms.GetRoom(roomCode)
	if err != nil {
		return entity.PlayerState{}, fmt.Errorf("failed to get state: %w", err)
	}

	var state entity.PlayerState
	_ = room.Do(func(game *entity.Game) error {
		state = game.StateFor(playerID)
		return nil
	})

	return state, nil
}

// States projects the room for several players from one consistent snapshot.
func (that *GameManager) States(_ context.Context, roomCode string, playerIDs []string) (map[string]entity.PlayerState, error) {
	room, err := that.rooms.GetRoom(roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get states: %w", err)
	}

	states := make(map[string]entity.PlayerState, len(playerIDs))
	_ = room.Do(func(game *entity.Game) error {
		for _, id := range playerIDs {
			states[id] = game.StateFor(id)
		}
		return nil
	})

	return states, nil
}

// play runs action on the room's game and archives the game if the action
// finished it.
func (that *GameManager) play(ctx context.Context, roomCode string, action func(game *entity.Game) error) error {
	room, err := that.rooms.GetRoom(roomCode)
	if err != nil {
		return err
	}

	var summary *entity.GameSummary
	err = room.Do(func(game *entity.Game) error {
		wasFinished := game.IsFinished()

		if err := action(game); err != nil {
			return err
		}

		if !wasFinished && game.IsFinished() {
			summary, _ = game.Summary()
		}

		return nil
	})
	if err != nil {
		return err
	}

	if summary != nil {
		that.archiveGame(ctx, summary)
	}

	return nil
}

func (that *GameManager) archiveGame(ctx context.Context, summary *entity.GameSummary) {
	log := that.logger.With("method", "archiveGame", "room", summary.RoomCode)

	if err := that.archive.Save(ctx, summary); err != nil {
		log.Error("failed to archive game", "error", err)
		return
	}

	log.Info("game archived", "winner", summary.Winner)
}
