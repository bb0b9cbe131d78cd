package room

import (
	"strings"

	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/models"
)

// Transitions never modify the room they are given. Each returns a fresh
// copy holding the next state, or an error leaving the caller's copy as is.

// NewRoom builds a waiting room with no players
func NewRoom(name string, rules models.ExtendedRules) *models.Room {
	return &models.Room{
		Name:          strings.TrimSpace(name),
		Players:       []*models.Player{},
		CurrentRound:  1,
		MaxRounds:     rules.MaxRounds(),
		Status:        models.RoomStatusWaiting,
		ExtendedRules: rules,
	}
}

// Join appends a new player with an empty score card
func Join(room *models.Room, playerID, name string, maxPlayers int) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidPlayerName
	}
	if !room.Status.IsWaiting() {
		return nil, ErrRoomAlreadyStarted
	}
	if room.PlayerByName(name) != nil {
		return nil, ErrDuplicatePlayerName
	}
	if maxPlayers <= 0 {
		maxPlayers = models.MaxPlayers
	}
	if len(room.Players) >= maxPlayers {
		return nil, ErrRoomFull
	}

	next := room.Clone()
	next.Players = append(next.Players, &models.Player{
		ID:        playerID,
		Name:      name,
		ScoreCard: models.ScoreCard{},
	})
	return next, nil
}

// Start shuffles the turn order and moves a waiting room into round one
func Start(room *models.Room, roller dice.Roller) (*models.Room, error) {
	if !room.Status.IsWaiting() {
		return nil, ErrRoomAlreadyStarted
	}
	if len(room.Players) == 0 {
		return nil, ErrNoPlayers
	}

	next := room.Clone()
	dice.Shuffle(roller, next.Players)
	next.Status = models.RoomStatusPlaying
	next.CurrentPlayerIndex = 0
	next.CurrentRound = 1
	if next.MaxRounds == 0 {
		next.MaxRounds = next.ExtendedRules.MaxRounds()
	}
	return next, nil
}

// Submit records a score for an open category and advances the turn.
// The round is complete once every player holds at least CurrentRound scores.
func Submit(room *models.Room, playerID string, category models.Category, score int, enforceTurn bool) (*models.Room, error) {
	if !room.Status.IsPlaying() {
		return nil, ErrGameNotInProgress
	}

	idx := room.PlayerIndex(playerID)
	if idx < 0 {
		return nil, ErrPlayerNotFound
	}
	if err := validateScore(room, category, score); err != nil {
		return nil, err
	}
	if enforceTurn && idx != room.CurrentPlayerIndex {
		return nil, ErrNotYourTurn
	}
	if room.Players[idx].ScoreCard.Scored(category) {
		return nil, ErrCategoryAlreadyScored
	}

	next := room.Clone()
	next.Players[idx].ScoreCard[category] = score

	if !roundComplete(next) {
		next.CurrentPlayerIndex = (next.CurrentPlayerIndex + 1) % len(next.Players)
		return next, nil
	}

	if next.CurrentRound >= next.MaxRounds {
		next.Status = models.RoomStatusFinished
		return next, nil
	}

	next.CurrentRound++
	next.CurrentPlayerIndex = 0
	return next, nil
}

// Correct overwrites a score. Turn, round and status are left alone.
func Correct(room *models.Room, playerID string, category models.Category, score int) (*models.Room, error) {
	idx := room.PlayerIndex(playerID)
	if idx < 0 {
		return nil, ErrPlayerNotFound
	}
	if err := validateScore(room, category, score); err != nil {
		return nil, err
	}

	next := room.Clone()
	next.Players[idx].ScoreCard[category] = score
	return next, nil
}

// Restart clears every score card, reshuffles and starts round one under the new rules
func Restart(room *models.Room, rules models.ExtendedRules, roller dice.Roller) (*models.Room, error) {
	if !room.Status.IsFinished() {
		return nil, ErrGameNotFinished
	}
	if len(room.Players) == 0 {
		return nil, ErrNoPlayers
	}

	next := room.Clone()
	for _, p := range next.Players {
		p.ScoreCard = models.ScoreCard{}
	}
	dice.Shuffle(roller, next.Players)
	next.ExtendedRules = rules
	next.MaxRounds = rules.MaxRounds()
	next.CurrentRound = 1
	next.CurrentPlayerIndex = 0
	next.Status = models.RoomStatusPlaying
	return next, nil
}

func validateScore(room *models.Room, category models.Category, score int) error {
	if !room.ExtendedRules.Allows(category) {
		return ErrInvalidCategory
	}
	if score < 0 {
		return ErrInvalidScore
	}
	return nil
}

func roundComplete(room *models.Room) bool {
	for _, p := range room.Players {
		if len(p.ScoreCard) < room.CurrentRound {
			return false
		}
	}
	return true
}
