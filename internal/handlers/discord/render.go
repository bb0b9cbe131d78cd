package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/KirkDiggler/yachtie/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

const (
	colorWaiting  = 0x3498db
	colorPlaying  = 0x00ff00
	colorFinished = 0xf1c40f
	colorError    = 0xff0000
)

// Button IDs
const (
	ButtonJoinRoom    = "yacht_join"
	ButtonStartGame   = "yacht_start"
	ButtonRestartGame = "yacht_restart"
)

var categoryLabels = map[models.Category]string{
	models.CategoryAce:           "Aces",
	models.CategoryDual:          "Twos",
	models.CategoryTriple:        "Threes",
	models.CategoryQuad:          "Fours",
	models.CategoryPenta:         "Fives",
	models.CategoryHexa:          "Sixes",
	models.CategoryThreeOfAKind:  "Three of a Kind",
	models.CategoryFourOfAKind:   "Four of a Kind",
	models.CategoryFullHouse:     "Full House",
	models.CategorySmallStraight: "Small Straight",
	models.CategoryLargeStraight: "Large Straight",
	models.CategoryYacht:         "Yacht",
	models.CategoryChance:        "Chance",
}

func categoryLabel(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// renderBoard renders the live board message of a room
func renderBoard(view *session.View) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	room := view.Room

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("🎲 %s", room.Name),
		Color:  colorWaiting,
		Footer: &discordgo.MessageEmbedFooter{Text: "Room " + room.ID},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: string(room.Status), Inline: true},
			{Name: "Round", Value: fmt.Sprintf("%d/%d", room.CurrentRound, room.MaxRounds), Inline: true},
			{Name: "Players", Value: fmt.Sprintf("%d", len(room.Players)), Inline: true},
		},
	}

	if rules := describeRules(room.ExtendedRules); rules != "" {
		embed.Description = rules
	}

	switch {
	case view.IsFinished:
		embed.Color = colorFinished
		winners := make([]string, 0, len(view.Winners))
		for _, w := range view.Winners {
			winners = append(winners, fmt.Sprintf("**%s** (%d)", w.Player.Name, w.TotalScore))
		}
		if len(winners) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "🏆 Winner",
				Value: strings.Join(winners, ", "),
			})
		}
	case view.CurrentPlayer != nil:
		embed.Color = colorPlaying
		turn := fmt.Sprintf("**%s**", view.CurrentPlayer.Name)
		if view.NextPlayer != nil {
			turn += fmt.Sprintf(", then %s", view.NextPlayer.Name)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Turn", Value: turn})
	}

	if standings := renderStandings(view.Rankings, len(room.ExtendedRules.Categories())); standings != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Standings",
			Value: standings,
		})
	}

	return embed, boardButtons(view)
}

func renderStandings(rankings []*models.Standing, categories int) string {
	var sb strings.Builder
	for _, st := range rankings {
		fmt.Fprintf(&sb, "%d. **%s** %d", st.Rank, st.Player.Name, st.TotalScore)
		if st.Totals.Bonus > 0 {
			fmt.Fprintf(&sb, " (+%d bonus)", st.Totals.Bonus)
		}
		fmt.Fprintf(&sb, " · %d/%d\n", len(st.Player.ScoreCard), categories)
	}
	return sb.String()
}

func describeRules(rules models.ExtendedRules) string {
	var parts []string
	if rules.EnableThreeOfAKind {
		parts = append(parts, "three of a kind")
	}
	if rules.FullHouseFixedScore {
		parts = append(parts, "fixed full house")
	}
	if len(parts) == 0 {
		return ""
	}
	return "Rules: " + strings.Join(parts, ", ")
}

func boardButtons(view *session.View) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent

	if view.Room.Status.IsWaiting() {
		buttons = append(buttons,
			discordgo.Button{
				Label:    "Join",
				Style:    discordgo.SuccessButton,
				CustomID: ButtonJoinRoom,
				Disabled: !view.CanJoin,
			},
			discordgo.Button{
				Label:    "Start",
				Style:    discordgo.PrimaryButton,
				CustomID: ButtonStartGame,
				Disabled: !view.CanStart,
			},
		)
	}
	if view.CanRestart {
		buttons = append(buttons, discordgo.Button{
			Label:    "Play Again",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonRestartGame,
		})
	}

	if len(buttons) == 0 {
		return []discordgo.MessageComponent{}
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// renderClosedBoard replaces the board of a deleted room
func renderClosedBoard(roomID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Room closed",
		Description: "This room no longer exists. Use `/yacht create` to start another.",
		Color:       colorError,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Room " + roomID},
	}
}

// renderDiceScores lists what a hand would score. Categories the player has
// already used are struck through.
func renderDiceScores(dice []int, scores map[models.Category]int, rules models.ExtendedRules, open []models.Category) *discordgo.MessageEmbed {
	isOpen := make(map[models.Category]bool, len(open))
	for _, c := range open {
		isOpen[c] = true
	}

	faces := make([]string, len(dice))
	for i, d := range dice {
		faces[i] = fmt.Sprintf("%d", d)
	}

	var sb strings.Builder
	for _, c := range rules.Categories() {
		line := fmt.Sprintf("%s: %d", categoryLabel(c), scores[c])
		if open != nil && !isOpen[c] {
			line = "~~" + line + "~~"
		}
		sb.WriteString(line + "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "🎲 " + strings.Join(faces, " "),
		Description: sb.String(),
		Color:       colorPlaying,
	}
}
