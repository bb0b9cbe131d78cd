package models

// Player represents a participant in a room
type Player struct {
	// ID is generated when the player joins
	ID string `json:"id"`

	// Name is the display name of the player, unique within the room
	Name string `json:"name"`

	// ScoreCard holds every category the player has scored so far
	ScoreCard ScoreCard `json:"scores"`
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	return &Player{
		ID:        p.ID,
		Name:      p.Name,
		ScoreCard: p.ScoreCard.Clone(),
	}
}
