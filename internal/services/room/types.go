package room

import (
	"github.com/KirkDiggler/yachtie/internal/common/uuid"
	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/models"
	roomRepo "github.com/KirkDiggler/yachtie/internal/repositories/room"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/rs/zerolog"
)

// Config holds configuration for the room service
type Config struct {
	// Maximum number of players per room, defaults to models.MaxPlayers
	MaxPlayers int

	// EnforceTurnOrder rejects scores submitted by anyone but the current player
	EnforceTurnOrder bool

	// ConflictRetries re-runs a mutation that lost a version race. Zero means
	// the conflict is returned to the caller.
	ConflictRetries int

	// Repository dependencies
	RoomRepo roomRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	UUIDGenerator uuid.UUID

	// Optional, defaults to the standard bonus rules
	Calculator *scoring.Calculator

	Logger zerolog.Logger
}

type CreateRoomInput struct {
	Name          string
	ExtendedRules models.ExtendedRules

	// CreatorName joins the creator as the first player when set
	CreatorName string
}

type CreateRoomOutput struct {
	RoomID string

	// PlayerID is set when the creator joined
	PlayerID string

	Room *models.Room
}

type JoinRoomInput struct {
	RoomID     string
	PlayerName string
}

type JoinRoomOutput struct {
	PlayerID string
	Room     *models.Room
}

type StartGameInput struct {
	RoomID string
}

type StartGameOutput struct {
	Room *models.Room
}

type SubmitScoreInput struct {
	RoomID   string
	PlayerID string
	Category models.Category
	Score    int
}

type SubmitScoreOutput struct {
	Room *models.Room

	// RoundCompleted is true when this score finished the round
	RoundCompleted bool

	// GameFinished is true when this score finished the last round
	GameFinished bool
}

type CorrectScoreInput struct {
	RoomID   string
	PlayerID string
	Category models.Category
	Score    int
}

type CorrectScoreOutput struct {
	Room *models.Room

	// PreviousScore is the value that was overwritten, if any
	PreviousScore int
	HadScore      bool
}

type RestartGameInput struct {
	RoomID        string
	ExtendedRules models.ExtendedRules
}

type RestartGameOutput struct {
	Room *models.Room
}

type DeleteRoomInput struct {
	RoomID string
}

type DeleteRoomOutput struct {
}

type GetRoomInput struct {
	RoomID string
}

type GetRoomOutput struct {
	Room *models.Room
}

type GetRankingsInput struct {
	RoomID string
}

type GetRankingsOutput struct {
	Room        *models.Room
	Leaderboard *models.Leaderboard
}

type ListRoomsInput struct {
}

type ListRoomsOutput struct {
	Rooms []*models.Room
}
