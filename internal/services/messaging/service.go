package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/models"
)

// service implements the Service interface
type service struct {
	// roller selects among message variants
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	s := &service{}
	if config != nil {
		s.roller = config.Roller
	}
	if s.roller == nil {
		s.roller = dice.New(nil)
	}
	return s, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.roller.Roll(len(messages))-1]
}

// GetJoinMessage returns a greeting for a player who joined a room
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.MaxPlayers > 0 && input.PlayerCount >= input.MaxPlayers {
		return &GetJoinMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s takes the last seat. That's a full table!", input.PlayerName),
				fmt.Sprintf("%s squeezes in. No more chairs, we're full.", input.PlayerName),
			}),
			Tone: ToneCelebration,
		}, nil
	}

	if input.PlayerCount <= 1 {
		return &GetJoinMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s is first at the table. Someone keep them company!", input.PlayerName),
				fmt.Sprintf("%s pulls up a chair and waits for challengers.", input.PlayerName),
			}),
			Tone: ToneEncouraging,
		}, nil
	}

	return &GetJoinMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("A new challenger appears: %s!", input.PlayerName),
			fmt.Sprintf("%s grabs the dice cup. Good luck!", input.PlayerName),
			fmt.Sprintf("Welcome aboard, %s. May your dice roll high.", input.PlayerName),
			fmt.Sprintf("%s joins the game. The more the merrier!", input.PlayerName),
		}),
		Tone: ToneFunny,
	}, nil
}

// GetScoreMessage returns a reaction to a recorded score
func (s *service) GetScoreMessage(ctx context.Context, input *GetScoreMessageInput) (*GetScoreMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName
	out := &GetScoreMessageOutput{}

	switch {
	case input.Score == 0:
		out.Tone = ToneSarcastic
		out.Message = s.pick([]string{
			fmt.Sprintf("%s scratches. The dice giveth and the dice taketh away.", name),
			fmt.Sprintf("A big fat zero for %s. Bold strategy.", name),
			fmt.Sprintf("%s sacrifices a category to the dice gods.", name),
		})
	case input.Category == models.CategoryYacht:
		out.Tone = ToneCelebration
		out.Message = s.pick([]string{
			fmt.Sprintf("🎉 YACHT! %s rolled five of a kind!", name),
			fmt.Sprintf("⛵ All aboard %s's yacht!", name),
			fmt.Sprintf("🎉 Five alike! %s is sailing away with it.", name),
		})
	case input.Category == models.CategoryLargeStraight || input.Category == models.CategoryFullHouse:
		out.Tone = ToneCelebration
		out.Message = s.pick([]string{
			fmt.Sprintf("Clean hand, %s!", name),
			fmt.Sprintf("%s makes it look easy.", name),
		})
	case input.Category.IsUpper() && input.Score >= 4*input.Category.Face():
		out.Tone = ToneEncouraging
		out.Message = s.pick([]string{
			fmt.Sprintf("%s is stacking the upper section.", name),
			fmt.Sprintf("Great haul, %s. That bonus is getting closer.", name),
		})
	default:
		out.Tone = ToneNeutral
		out.Message = s.pick([]string{
			fmt.Sprintf("Noted, %s.", name),
			fmt.Sprintf("Every point counts, %s.", name),
			fmt.Sprintf("On the board it goes, %s.", name),
		})
	}

	if input.BonusEarned {
		out.Message += fmt.Sprintf(" Upper bonus unlocked: +%d!", input.BonusScore)
		out.Tone = ToneCelebration
	}

	return out, nil
}

// GetGameOverMessage announces the winners of a finished game
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch len(input.Winners) {
	case 0:
		return &GetGameOverMessageOutput{Message: "Game over!", Tone: ToneNeutral}, nil
	case 1:
		winner := input.Winners[0]
		return &GetGameOverMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("🏆 %s wins with %d points!", winner, input.Score),
				fmt.Sprintf("🏆 All hail %s, champion of the table with %d!", winner, input.Score),
				fmt.Sprintf("🏆 %s takes it with %d. Rematch?", winner, input.Score),
			}),
			Tone: ToneCelebration,
		}, nil
	default:
		names := strings.Join(input.Winners[:len(input.Winners)-1], ", ") + " and " + input.Winners[len(input.Winners)-1]
		return &GetGameOverMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("🤝 It's a tie! %s share the win with %d.", names, input.Score),
				fmt.Sprintf("🤝 Dead heat at %d between %s.", input.Score, names),
			}),
			Tone: ToneCelebration,
		}, nil
	}
}
