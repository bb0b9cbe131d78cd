package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/yachtie/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/yachtie/internal/models"
)

// Repository defines the interface for room persistence and change notification
type Repository interface {
	// GetRoom retrieves a room by ID
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// CreateRoom stores a new room under a generated ID
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// UpdateRoom applies a patch, optionally guarded by the room version
	UpdateRoom(ctx context.Context, input *UpdateRoomInput) (*models.Room, error)

	// DeleteRoom removes a room. Deleting a missing room is not an error.
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// Subscribe delivers the latest room immediately and after every change
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// ListActiveRooms retrieves every room that has not finished
	ListActiveRooms(ctx context.Context, input *ListActiveRoomsInput) (*ListActiveRoomsOutput, error)
}
