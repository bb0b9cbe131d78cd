// Package session derives what one viewer of a room should see.
package session

import (
	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/KirkDiggler/yachtie/internal/scoring"
)

// View is a read-only projection of a room for one viewer
type View struct {
	Room *models.Room `json:"room"`

	// MyPlayer is nil for spectators
	MyPlayer *models.Player `json:"myPlayer,omitempty"`

	CurrentPlayer *models.Player `json:"currentPlayer,omitempty"`
	NextPlayer    *models.Player `json:"nextPlayer,omitempty"`

	IsMyTurn   bool `json:"isMyTurn"`
	CanJoin    bool `json:"canJoin"`
	CanStart   bool `json:"canStart"`
	CanRestart bool `json:"canRestart"`
	IsFinished bool `json:"isFinished"`

	// OpenCategories are my categories still unscored under the room rules
	OpenCategories []models.Category `json:"openCategories"`

	Rankings []*models.Standing `json:"rankings"`

	// Winners share rank one once the game has finished
	Winners []*models.Standing `json:"winners,omitempty"`
}

// Bind builds the view of room for the player with the given name. An empty
// or unknown name produces a spectator view.
func Bind(room *models.Room, calc *scoring.Calculator, playerName string) *View {
	if room == nil {
		return nil
	}
	if calc == nil {
		calc = scoring.NewCalculator(scoring.DefaultConfig())
	}

	view := &View{
		Room:           room,
		CurrentPlayer:  room.CurrentPlayer(),
		IsFinished:     room.Status.IsFinished(),
		Rankings:       calc.Rankings(room),
		OpenCategories: []models.Category{},
	}

	if playerName != "" {
		view.MyPlayer = room.PlayerByName(playerName)
	}

	if view.CurrentPlayer != nil && len(room.Players) > 1 {
		view.NextPlayer = room.Players[(room.CurrentPlayerIndex+1)%len(room.Players)]
	}

	if view.MyPlayer != nil && view.CurrentPlayer != nil {
		view.IsMyTurn = view.MyPlayer.ID == view.CurrentPlayer.ID
	}

	view.CanJoin = room.Status.IsWaiting() && view.MyPlayer == nil && len(room.Players) < models.MaxPlayers
	view.CanStart = room.Status.IsWaiting() && len(room.Players) > 0
	view.CanRestart = view.IsFinished && len(room.Players) > 0

	if view.MyPlayer != nil {
		view.OpenCategories = OpenCategories(room, view.MyPlayer)
	}

	if view.IsFinished {
		view.Winners = calc.TiedPlayers(room, 1)
	}

	return view
}

// OpenCategories lists the player's unscored categories in score card order
func OpenCategories(room *models.Room, player *models.Player) []models.Category {
	open := []models.Category{}
	for _, c := range room.ExtendedRules.Categories() {
		if !player.ScoreCard.Scored(c) {
			open = append(open, c)
		}
	}
	return open
}
