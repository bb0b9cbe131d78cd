package session

import (
	"testing"

	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func room(status models.RoomStatus, rules models.ExtendedRules, names ...string) *models.Room {
	r := &models.Room{
		ID:            "room-1",
		Status:        status,
		CurrentRound:  1,
		MaxRounds:     rules.MaxRounds(),
		ExtendedRules: rules,
	}
	for _, name := range names {
		r.Players = append(r.Players, &models.Player{ID: "id-" + name, Name: name, ScoreCard: models.ScoreCard{}})
	}
	return r
}

func TestBind_Nil(t *testing.T) {
	assert.Nil(t, Bind(nil, nil, "a"))
}

func TestBind_WaitingRoom(t *testing.T) {
	r := room(models.RoomStatusWaiting, models.ExtendedRules{}, "alice")

	spectator := Bind(r, nil, "")
	assert.Nil(t, spectator.MyPlayer)
	assert.True(t, spectator.CanJoin)
	assert.True(t, spectator.CanStart)
	assert.False(t, spectator.IsMyTurn)
	assert.Nil(t, spectator.CurrentPlayer)
	assert.Empty(t, spectator.OpenCategories)

	alice := Bind(r, nil, "alice")
	require.NotNil(t, alice.MyPlayer)
	assert.False(t, alice.CanJoin)
	assert.Len(t, alice.OpenCategories, 12)

	empty := room(models.RoomStatusWaiting, models.ExtendedRules{})
	assert.False(t, Bind(empty, nil, "").CanStart)
}

func TestBind_Turns(t *testing.T) {
	r := room(models.RoomStatusPlaying, models.ExtendedRules{}, "a", "b", "c")
	r.CurrentPlayerIndex = 2

	view := Bind(r, nil, "c")
	assert.True(t, view.IsMyTurn)
	assert.Equal(t, "c", view.CurrentPlayer.Name)
	assert.Equal(t, "a", view.NextPlayer.Name)
	assert.False(t, view.CanJoin)
	assert.False(t, view.CanStart)

	other := Bind(r, nil, "a")
	assert.False(t, other.IsMyTurn)

	solo := room(models.RoomStatusPlaying, models.ExtendedRules{}, "a")
	assert.Nil(t, Bind(solo, nil, "a").NextPlayer)
}

func TestBind_OpenCategoriesHonourRules(t *testing.T) {
	r := room(models.RoomStatusPlaying, models.ExtendedRules{EnableThreeOfAKind: true}, "a")
	r.Players[0].ScoreCard[models.CategoryAce] = 3
	r.Players[0].ScoreCard[models.CategoryYacht] = 0

	view := Bind(r, nil, "a")

	assert.Len(t, view.OpenCategories, 11)
	assert.Contains(t, view.OpenCategories, models.CategoryThreeOfAKind)
	assert.NotContains(t, view.OpenCategories, models.CategoryAce)
	assert.NotContains(t, view.OpenCategories, models.CategoryYacht)
	assert.Equal(t, models.CategoryDual, view.OpenCategories[0])
}

func TestBind_FinishedWithTie(t *testing.T) {
	r := room(models.RoomStatusFinished, models.ExtendedRules{}, "a", "b", "c")
	r.Players[0].ScoreCard[models.CategoryChance] = 20
	r.Players[1].ScoreCard[models.CategoryChance] = 25
	r.Players[2].ScoreCard[models.CategoryChance] = 25

	view := Bind(r, scoring.NewCalculator(scoring.DefaultConfig()), "a")

	assert.True(t, view.IsFinished)
	assert.True(t, view.CanRestart)
	assert.Nil(t, view.CurrentPlayer)
	assert.False(t, view.IsMyTurn)
	require.Len(t, view.Winners, 2)
	assert.Equal(t, "b", view.Winners[0].Player.Name)
	assert.Equal(t, "c", view.Winners[1].Player.Name)
	assert.Equal(t, 3, view.Rankings[2].Rank)
}
