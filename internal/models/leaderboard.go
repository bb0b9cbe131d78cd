package models

// Totals breaks a score card down into its sections
type Totals struct {
	// Upper is the sum of the die-face categories
	Upper int `json:"upper"`

	// Lower is the sum of the hand-pattern categories
	Lower int `json:"lower"`

	// Bonus is awarded when Upper reaches the bonus threshold
	Bonus int `json:"bonus"`

	// Total is Upper + Lower + Bonus
	Total int `json:"total"`
}

// Standing represents one player's position in a room
type Standing struct {
	// Player is the ranked player
	Player *Player `json:"player"`

	// Totals is the player's score breakdown
	Totals Totals `json:"totals"`

	// TotalScore duplicates Totals.Total for callers that only need the number
	TotalScore int `json:"totalScore"`

	// Rank is 1-based; tied players share a rank and the next rank skips the tie group
	Rank int `json:"rank"`
}

// Leaderboard represents the current standings in a room
type Leaderboard struct {
	// RoomID is the unique identifier for the room
	RoomID string `json:"roomId"`

	// Standings are ordered by total descending
	Standings []*Standing `json:"standings"`
}
