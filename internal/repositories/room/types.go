package room

import "github.com/KirkDiggler/yachtie/internal/models"

type GetRoomInput struct {
	RoomID string
}

type CreateRoomInput struct {
	// Room is stored as given; ID, Version and timestamps are assigned by the store
	Room *models.Room
}

type CreateRoomOutput struct {
	Room *models.Room
}

// RoomPatch lists the fields to overwrite. Nil fields are left untouched.
type RoomPatch struct {
	Name               *string
	Players            []*models.Player
	CurrentPlayerIndex *int
	CurrentRound       *int
	MaxRounds          *int
	Status             *models.RoomStatus
	ExtendedRules      *models.ExtendedRules
}

// IsEmpty returns true if the patch changes nothing
func (p *RoomPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Players == nil && p.CurrentPlayerIndex == nil &&
		p.CurrentRound == nil && p.MaxRounds == nil && p.Status == nil && p.ExtendedRules == nil)
}

func (p *RoomPatch) apply(room *models.Room) {
	if p == nil {
		return
	}
	if p.Name != nil {
		room.Name = *p.Name
	}
	if p.Players != nil {
		room.Players = p.Players
	}
	if p.CurrentPlayerIndex != nil {
		room.CurrentPlayerIndex = *p.CurrentPlayerIndex
	}
	if p.CurrentRound != nil {
		room.CurrentRound = *p.CurrentRound
	}
	if p.MaxRounds != nil {
		room.MaxRounds = *p.MaxRounds
	}
	if p.Status != nil {
		room.Status = *p.Status
	}
	if p.ExtendedRules != nil {
		room.ExtendedRules = *p.ExtendedRules
	}
}

type UpdateRoomInput struct {
	RoomID string
	Patch  *RoomPatch

	// ExpectedVersion fails the update with ErrVersionConflict when the stored
	// room has moved on. Zero skips the check.
	ExpectedVersion int64
}

type DeleteRoomInput struct {
	RoomID string
}

type SubscribeInput struct {
	RoomID string

	// OnChange receives the latest room. Calls are serialized.
	OnChange func(room *models.Room)

	// OnError receives read failures, including ErrRoomNotFound after a delete
	OnError func(err error)
}

type SubscribeOutput struct {
	// Unsubscribe stops deliveries. Safe to call more than once.
	Unsubscribe func()
}

type ListActiveRoomsInput struct {
}

type ListActiveRoomsOutput struct {
	Rooms []*models.Room
}
