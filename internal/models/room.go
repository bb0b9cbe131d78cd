package models

import (
	"time"
)

// RoomStatus represents the current state of a room
type RoomStatus string

const (
	// RoomStatusWaiting indicates a room is waiting for players to join
	RoomStatusWaiting RoomStatus = "waiting"

	// RoomStatusPlaying indicates a game is in progress
	RoomStatusPlaying RoomStatus = "playing"

	// RoomStatusFinished indicates the last round has been completed
	RoomStatusFinished RoomStatus = "finished"
)

// IsWaiting returns true if the room is still accepting players
func (s RoomStatus) IsWaiting() bool {
	return s == RoomStatusWaiting
}

// IsPlaying returns true if a game is in progress
func (s RoomStatus) IsPlaying() bool {
	return s == RoomStatusPlaying
}

// IsFinished returns true if the game has been completed
func (s RoomStatus) IsFinished() bool {
	return s == RoomStatusFinished
}

// MaxPlayers is the largest number of players a room accepts
const MaxPlayers = 10

// Room represents one shared game session
type Room struct {
	// ID is the unique identifier for the room
	ID string `json:"id"`

	// Name is the display name chosen by the creator
	Name string `json:"name"`

	// Players in turn order
	Players []*Player `json:"players"`

	// CurrentPlayerIndex points into Players while the game is playing
	CurrentPlayerIndex int `json:"currentPlayerIndex"`

	// CurrentRound is 1-based
	CurrentRound int `json:"currentRound"`

	// MaxRounds is derived from the extended rules
	MaxRounds int `json:"maxRounds"`

	// Status is the current state of the room
	Status RoomStatus `json:"status"`

	// ExtendedRules are the rule variants the room was started with
	ExtendedRules ExtendedRules `json:"extendedRules"`

	// Version is incremented by the store on every write
	Version int64 `json:"version"`

	// CreatedAt is when the room was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the room was last updated
	UpdatedAt time.Time `json:"updatedAt"`
}

// Player returns the player with the given ID, or nil
func (r *Room) Player(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// PlayerByName returns the player with the given name, or nil.
// Names are compared case-sensitively.
func (r *Room) PlayerByName(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the turn-order index of a player, or -1
func (r *Room) PlayerIndex(playerID string) int {
	for i, p := range r.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is, or nil when no game is in progress
func (r *Room) CurrentPlayer() *Player {
	if !r.Status.IsPlaying() {
		return nil
	}
	if r.CurrentPlayerIndex < 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		clone.Players[i] = p.Clone()
	}
	return &clone
}
