package channel

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/yachtie/internal/repositories/channel Repository

import (
	"context"

	"github.com/KirkDiggler/yachtie/internal/models"
)

// Repository persists which room each channel is playing
type Repository interface {
	// GetBinding retrieves the binding of a channel
	GetBinding(ctx context.Context, input *GetBindingInput) (*models.ChannelBinding, error)

	// SaveBinding binds a channel, replacing any previous binding
	SaveBinding(ctx context.Context, input *SaveBindingInput) error

	// DeleteBinding unbinds a channel
	DeleteBinding(ctx context.Context, input *DeleteBindingInput) error
}
