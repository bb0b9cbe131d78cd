package room

import (
	"context"
	"errors"
	"fmt"

	roomRepo "github.com/KirkDiggler/yachtie/internal/repositories/room"
	"github.com/KirkDiggler/yachtie/internal/scoring"
)

// RoomError is a custom error type for room-related errors
type RoomError string

// Error implements the error interface
func (e RoomError) Error() string {
	return string(e)
}

const (
	ErrRoomNotFound           RoomError = "room not found"
	ErrPlayerNotFound         RoomError = "player not found"
	ErrRoomAlreadyStarted     RoomError = "room has already started"
	ErrDuplicatePlayerName    RoomError = "a player with that name is already in the room"
	ErrRoomFull               RoomError = "room is at maximum capacity"
	ErrCategoryAlreadyScored  RoomError = "category has already been scored"
	ErrConcurrentModification RoomError = "room was modified by someone else, reload and try again"
	ErrNotYourTurn            RoomError = "it is not this player's turn"

	ErrInvalidPlayerName RoomError = "player name cannot be empty"
	ErrInvalidRoomID     RoomError = "room ID cannot be empty"
	ErrNoPlayers         RoomError = "room has no players"
	ErrGameNotInProgress RoomError = "game is not in progress"
	ErrGameNotFinished   RoomError = "game has not finished"
	ErrInvalidCategory   RoomError = "category is not available in this room"
	ErrInvalidScore      RoomError = "score cannot be negative"

	ErrUnavailable RoomError = "room store unavailable"

	ErrNilConfig        RoomError = "config cannot be nil"
	ErrNilRoomRepo      RoomError = "room repository cannot be nil"
	ErrNilDiceRoller    RoomError = "dice roller cannot be nil"
	ErrNilUUIDGenerator RoomError = "UUID generator cannot be nil"
)

// Kind groups errors by how a caller should react to them
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalid
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Kind classifies the error
func (e RoomError) Kind() Kind {
	switch e {
	case ErrRoomNotFound, ErrPlayerNotFound:
		return KindNotFound
	case ErrRoomAlreadyStarted, ErrDuplicatePlayerName, ErrRoomFull,
		ErrCategoryAlreadyScored, ErrConcurrentModification, ErrNotYourTurn:
		return KindConflict
	case ErrInvalidPlayerName, ErrInvalidRoomID, ErrNoPlayers, ErrGameNotInProgress,
		ErrGameNotFinished, ErrInvalidCategory, ErrInvalidScore:
		return KindInvalid
	case ErrUnavailable:
		return KindUnavailable
	default:
		return KindInternal
	}
}

// KindOf classifies any error returned by this package, the room store or the scoring rules
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var roomErr RoomError
	if errors.As(err, &roomErr) {
		return roomErr.Kind()
	}

	var scoringErr scoring.ScoringError
	if errors.As(err, &scoringErr) {
		return KindInvalid
	}

	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		return KindNotFound
	case errors.Is(err, roomRepo.ErrVersionConflict):
		return KindConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindUnavailable
	}

	return KindInternal
}

// StoreError translates a room store failure into a RoomError
func StoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, roomRepo.ErrVersionConflict):
		return ErrConcurrentModification
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
