package messaging

import (
	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Roller picks among message variants, defaults to an unseeded roller
	Roller dice.Roller
}

// GetJoinMessageInput contains parameters for getting a join message
type GetJoinMessageInput struct {
	PlayerName string

	// PlayerCount includes the player who just joined
	PlayerCount int

	MaxPlayers int
}

// GetJoinMessageOutput contains the result of getting a join message
type GetJoinMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetScoreMessageInput contains parameters for getting a score message
type GetScoreMessageInput struct {
	PlayerName string
	Category   models.Category
	Score      int

	// BonusEarned is true when this score lifted the upper section over the bonus threshold
	BonusEarned bool
	BonusScore  int
}

// GetScoreMessageOutput contains the result of getting a score message
type GetScoreMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGameOverMessageInput contains parameters for getting a game over message
type GetGameOverMessageInput struct {
	// Winners share the top total
	Winners []string
	Score   int
}

// GetGameOverMessageOutput contains the result of getting a game over message
type GetGameOverMessageOutput struct {
	Message string
	Tone    MessageTone
}
