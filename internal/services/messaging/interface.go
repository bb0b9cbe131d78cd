package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/yachtie/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns a greeting for a player who joined a room
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetScoreMessage returns a reaction to a recorded score
	GetScoreMessage(ctx context.Context, input *GetScoreMessageInput) (*GetScoreMessageOutput, error)

	// GetGameOverMessage announces the winners of a finished game
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)
}
