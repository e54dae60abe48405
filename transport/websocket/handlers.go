package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
)

func (that *Server) handleCreateRoom(ctx context.Context, c *client, _ *Payload) error {
	roomCode := that.game.CreateRoom(ctx)

	return c.send(eventRoomCreated, roomCreatedPayload{Code: roomCode})
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, payload *Payload) error {
	log := that.logger.With("method", "handleJoinRoom")

	roomCode := payload.RoomCode

	player, err := that.game.JoinRoom(ctx, roomCode, payload.Nickname)
	if err != nil {
		return err
	}

	// a connection speaks for one player at a time
	if previousRoom, previousPlayer := c.identity(); previousRoom != "" {
		if err = that.game.LeaveRoom(ctx, previousRoom, previousPlayer); err != nil {
			log.Warn("failed to leave previous room", "room", previousRoom, "error", err)
		}
		that.unbind(c)
		c.bind("", "")
		that.broadcast(ctx, previousRoom)
	}

	that.bind(c, roomCode, player.ID)

	joined := joinedPayload{
		PlayerID: player.ID,
		RoomCode: roomCode,
		Nickname: player.Nickname,
	}
	if err = c.send(eventJoined, joined); err != nil {
		return fmt.Errorf("failed to confirm join: %w", err)
	}

	that.broadcast(ctx, roomCode)

	return nil
}

func (that *Server) handleJoinTeam(ctx context.Context, _ *client, payload *Payload) error {
	team, err := entity.ParseTeam(payload.Team)
	if err != nil {
		return err
	}

	return that.settle(ctx, payload.RoomCode,
		that.game.JoinTeam(ctx, payload.RoomCode, payload.PlayerID, team))
}

func (that *Server) handleStartGame(ctx context.Context, _ *client, payload *Payload) error {
	uniqueCodes := true
	if payload.UniqueCodes != nil {
		uniqueCodes = *payload.UniqueCodes
	}

	return that.settle(ctx, payload.RoomCode,
		that.game.StartGame(ctx, payload.RoomCode, payload.PlayerID, uniqueCodes))
}

func (that *Server) handleSubmitClue(ctx context.Context, _ *client, payload *Payload) error {
	return that.settle(ctx, payload.RoomCode,
		that.game.SubmitClue(ctx, payload.RoomCode, payload.PlayerID, payload.Words))
}

func (that *Server) handleMakeGuess(ctx context.Context, _ *client, payload *Payload) error {
	team := entity.TeamNone
	if payload.Team != "" {
		parsed, err := entity.ParseTeam(payload.Team)
		if err != nil {
			return err
		}
		team = parsed
	}

	return that.settle(ctx, payload.RoomCode,
		that.game.MakeGuess(ctx, payload.RoomCode, payload.PlayerID, payload.Code, team))
}

func (that *Server) handleConfirmIntercept(ctx context.Context, _ *client, payload *Payload) error {
	team, err := entity.ParseTeam(payload.InterceptingTeam)
	if err != nil {
		return err
	}

	return that.settle(ctx, payload.RoomCode,
		that.game.ConfirmIntercept(ctx, payload.RoomCode, payload.PlayerID, team))
}

func (that *Server) handleConfirmOwnGuess(ctx context.Context, _ *client, payload *Payload) error {
	return that.settle(ctx, payload.RoomCode,
		that.game.ConfirmOwnGuess(ctx, payload.RoomCode, payload.PlayerID, payload.GuessedCorrectly))
}

// handleResolveRound serves older clients that report the round outcome in
// one message.
func (that *Server) handleResolveRound(ctx context.Context, _ *client, payload *Payload) error {
	outcome, err := entity.ParseRoundOutcome(payload.Outcome)
	if err != nil {
		return err
	}

	return that.settle(ctx, payload.RoomCode,
		that.game.ResolveRound(ctx, payload.RoomCode, payload.PlayerID, outcome))
}

func (that *Server) handleGetState(ctx context.Context, c *client, payload *Payload) error {
	state, err := that.game.State(ctx, payload.RoomCode, payload.PlayerID)
	if err != nil {
		return err
	}

	return c.send(eventStateUpdate, stateUpdatePayload{State: state, YourPlayerID: payload.PlayerID})
}

// settle broadcasts the room after a successful action, and after a failure
// that left an explanation in the room's message log.
func (that *Server) settle(ctx context.Context, roomCode string, err error) error {
	if err == nil || isLoggedFailure(err) {
		that.broadcast(ctx, roomCode)
	}

	return err
}

func isLoggedFailure(err error) bool {
	return errors.Is(err, apperror.ErrNotEnoughPlayers) || errors.Is(err, apperror.ErrFirstRoundIntercept)
}
