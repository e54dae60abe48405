package apperror

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrEmptyNickname  = errors.New("nickname is required")

	ErrWrongPhase          = errors.New("action is not allowed in the current phase")
	ErrNotEncoder          = errors.New("only the current encoder can do that")
	ErrInvalidClue         = errors.New("exactly 3 clue words are required")
	ErrInvalidCode         = errors.New("code must be 3 distinct digits from 1 to 4")
	ErrInvalidTeam         = errors.New("invalid team")
	ErrOwnTeamGuess        = errors.New("encoding team cannot guess its own code")
	ErrNotEnoughPlayers    = errors.New("need at least 2 players per team")
	ErrFirstRoundIntercept = errors.New("interception is impossible in a team's first round")
	ErrNoCorrectGuess      = errors.New("intercepting team has no correct guess this round")
	ErrInvalidOutcome      = errors.New("unknown round outcome")
	ErrNotEnoughWords      = errors.New("word bank is too small to deal secret words")

	ErrInvalidRequest = errors.New("invalid request")
	ErrRateLimited    = errors.New("too many messages, slow down")
	ErrUnknownAction  = errors.New("unknown action")
)
