package models

import "time"

// ChannelBinding ties a chat channel to the room it plays and the message
// that shows the room's board
type ChannelBinding struct {
	ChannelID string    `json:"channelId"`
	RoomID    string    `json:"roomId"`
	MessageID string    `json:"messageId"`
	UpdatedAt time.Time `json:"updatedAt"`
}
