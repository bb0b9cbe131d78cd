package room

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/yachtie/internal/services/room Service

import (
	"context"
)

// Service runs every room mutation as a guarded read-modify-write
type Service interface {
	// CreateRoom creates a waiting room, joining the creator when a name is given
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds a player to a waiting room
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// StartGame shuffles the players and begins round one
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// SubmitScore records a new score and advances the turn
	SubmitScore(ctx context.Context, input *SubmitScoreInput) (*SubmitScoreOutput, error)

	// CorrectScore overwrites a score without touching the turn or round
	CorrectScore(ctx context.Context, input *CorrectScoreInput) (*CorrectScoreOutput, error)

	// RestartGame clears every score card and starts over
	RestartGame(ctx context.Context, input *RestartGameInput) (*RestartGameOutput, error)

	// DeleteRoom removes a room
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) (*DeleteRoomOutput, error)

	// GetRoom retrieves a room
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// GetRankings retrieves a room with its current standings
	GetRankings(ctx context.Context, input *GetRankingsInput) (*GetRankingsOutput, error)

	// ListRooms retrieves every room that has not finished
	ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error)
}
