package discord

import (
	"testing"

	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/KirkDiggler/yachtie/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardRoom(status models.RoomStatus, names ...string) *models.Room {
	r := &models.Room{
		ID:           "room-1",
		Name:         "friday",
		Status:       status,
		CurrentRound: 3,
		MaxRounds:    models.MaxRounds,
	}
	for _, name := range names {
		r.Players = append(r.Players, &models.Player{ID: "id-" + name, Name: name, ScoreCard: models.ScoreCard{}})
	}
	return r
}

func buttons(t *testing.T, components []discordgo.MessageComponent) []discordgo.Button {
	t.Helper()
	if len(components) == 0 {
		return nil
	}
	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	var out []discordgo.Button
	for _, c := range row.Components {
		b, ok := c.(discordgo.Button)
		require.True(t, ok)
		out = append(out, b)
	}
	return out
}

func field(embed *discordgo.MessageEmbed, name string) *discordgo.MessageEmbedField {
	for _, f := range embed.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func TestRenderBoard_Waiting(t *testing.T) {
	room := boardRoom(models.RoomStatusWaiting, "alice")
	room.ExtendedRules = models.ExtendedRules{EnableThreeOfAKind: true}

	embed, components := renderBoard(session.Bind(room, nil, ""))

	assert.Equal(t, colorWaiting, embed.Color)
	assert.Equal(t, "Rules: three of a kind", embed.Description)
	assert.Nil(t, field(embed, "Turn"))

	bs := buttons(t, components)
	require.Len(t, bs, 2)
	assert.Equal(t, ButtonJoinRoom, bs[0].CustomID)
	assert.False(t, bs[0].Disabled)
	assert.Equal(t, ButtonStartGame, bs[1].CustomID)
	assert.False(t, bs[1].Disabled)
}

func TestRenderBoard_Playing(t *testing.T) {
	room := boardRoom(models.RoomStatusPlaying, "alice", "bob")
	room.CurrentPlayerIndex = 1
	room.Players[0].ScoreCard[models.CategoryYacht] = 50

	embed, components := renderBoard(session.Bind(room, nil, ""))

	assert.Equal(t, colorPlaying, embed.Color)
	assert.Equal(t, "3/12", field(embed, "Round").Value)
	assert.Equal(t, "**bob**, then alice", field(embed, "Turn").Value)
	assert.Equal(t, "1. **alice** 50 · 1/12\n2. **bob** 0 · 0/12\n", field(embed, "Standings").Value)
	assert.Empty(t, components)
}

func TestRenderBoard_FinishedShowsWinnersAndBonus(t *testing.T) {
	room := boardRoom(models.RoomStatusFinished, "alice", "bob")
	for _, c := range models.UpperSection {
		room.Players[0].ScoreCard[c] = 3 * c.Face()
		room.Players[1].ScoreCard[c] = 3 * c.Face()
	}

	embed, components := renderBoard(session.Bind(room, scoring.NewCalculator(scoring.DefaultConfig()), ""))

	assert.Equal(t, colorFinished, embed.Color)
	assert.Equal(t, "**alice** (98), **bob** (98)", field(embed, "🏆 Winner").Value)
	assert.Contains(t, field(embed, "Standings").Value, "1. **bob** 98 (+35 bonus)")

	bs := buttons(t, components)
	require.Len(t, bs, 1)
	assert.Equal(t, ButtonRestartGame, bs[0].CustomID)
}

func TestRenderBoard_FullRoomDisablesJoin(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	embed, components := renderBoard(session.Bind(boardRoom(models.RoomStatusWaiting, names...), nil, ""))

	assert.Equal(t, "10", field(embed, "Players").Value)
	assert.True(t, buttons(t, components)[0].Disabled)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Full House", categoryLabel(models.CategoryFullHouse))
	assert.Equal(t, "mystery", categoryLabel(models.Category("mystery")))
}
