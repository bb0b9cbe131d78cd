package channel

import "github.com/KirkDiggler/yachtie/internal/models"

type GetBindingInput struct {
	ChannelID string
}

type SaveBindingInput struct {
	Binding *models.ChannelBinding
}

type DeleteBindingInput struct {
	ChannelID string

	// RoomID, when set, only deletes a binding that still points at this room
	RoomID string
}
