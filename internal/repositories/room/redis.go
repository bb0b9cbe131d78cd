package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/yachtie/internal/common/clock"
	"github.com/KirkDiggler/yachtie/internal/common/uuid"
	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	roomKeyPrefix  = "room:"
	changesSuffix  = ":changes"
	activeRoomsKey = "rooms:active"
)

// RepositoryError is returned by the room store
type RepositoryError string

// Error implements the error interface
func (e RepositoryError) Error() string {
	return string(e)
}

const (
	// ErrRoomNotFound is returned when a room does not exist
	ErrRoomNotFound RepositoryError = "room not found"

	// ErrVersionConflict is returned when a guarded update lost a race
	ErrVersionConflict RepositoryError = "room was modified concurrently"
)

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Optional, defaults to random v4 UUIDs
	UUIDGenerator uuid.UUID

	// Optional, defaults to the system clock
	Clock clock.Clock

	Logger zerolog.Logger
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	uuid   uuid.UUID
	clock  clock.Clock
	log    zerolog.Logger
}

// NewRedis creates a new Redis-backed room repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo := &redisRepository{
		client: cfg.RedisClient,
		uuid:   cfg.UUIDGenerator,
		clock:  cfg.Clock,
		log:    cfg.Logger.With().Str("component", "room_repository").Logger(),
	}
	if repo.uuid == nil {
		repo.uuid = uuid.New()
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}

	return repo, nil
}

func roomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

func changesKey(roomID string) string {
	return roomKeyPrefix + roomID + changesSuffix
}

// GetRoom retrieves a room by ID from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	data, err := r.client.Get(ctx, roomKey(input.RoomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return decodeRoom(data)
}

// CreateRoom stores a new room with a generated ID at version 1
func (r *redisRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.Room == nil {
		return nil, errors.New("input and room cannot be nil")
	}

	room := input.Room.Clone()
	room.ID = r.uuid.NewUUID()
	room.Version = 1
	now := r.clock.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.Players == nil {
		room.Players = []*models.Player{}
	}

	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, roomKey(room.ID), data, 0)
	if !room.Status.IsFinished() {
		pipe.SAdd(ctx, activeRoomsKey, room.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	r.log.Debug().Str("room_id", room.ID).Msg("room created")

	return &CreateRoomOutput{Room: room}, nil
}

// UpdateRoom applies the patch inside a WATCH/MULTI transaction and publishes a change
func (r *redisRepository) UpdateRoom(ctx context.Context, input *UpdateRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	key := roomKey(input.RoomID)
	var updated *models.Room

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to get room: %w", err)
		}

		room, err := decodeRoom(data)
		if err != nil {
			return err
		}

		if input.ExpectedVersion != 0 && room.Version != input.ExpectedVersion {
			return ErrVersionConflict
		}

		input.Patch.apply(room)
		room.Version++
		room.UpdatedAt = r.clock.Now()

		data, err = json.Marshal(room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if room.Status.IsFinished() {
				pipe.SRem(ctx, activeRoomsKey, room.ID)
			} else {
				pipe.SAdd(ctx, activeRoomsKey, room.ID)
			}
			pipe.Publish(ctx, changesKey(room.ID), room.Version)
			return nil
		})
		if err != nil {
			return err
		}

		updated = room
		return nil
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrVersionConflict
		}
		if errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	r.log.Debug().
		Str("room_id", updated.ID).
		Int64("version", updated.Version).
		Msg("room updated")

	return updated, nil
}

// DeleteRoom removes a room and notifies subscribers
func (r *redisRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, roomKey(input.RoomID))
	pipe.SRem(ctx, activeRoomsKey, input.RoomID)
	pipe.Publish(ctx, changesKey(input.RoomID), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// Subscribe listens on the room's change channel and re-reads the room on
// every notification, so each delivery carries the latest document.
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}
	if input.OnChange == nil || input.OnError == nil {
		return nil, errors.New("change and error callbacks are required")
	}

	pubsub := r.client.Subscribe(ctx, changesKey(input.RoomID))
	// wait for the subscription to be confirmed so no change is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room: %w", err)
	}

	subCtx, cancel := context.WithCancel(context.Background())
	log := r.log.With().Str("room_id", input.RoomID).Logger()

	go func() {
		r.deliver(subCtx, input)

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				r.deliver(subCtx, input)
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancel()
			if err := pubsub.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close room subscription")
			}
		})
	}

	return &SubscribeOutput{Unsubscribe: unsubscribe}, nil
}

func (r *redisRepository) deliver(ctx context.Context, input *SubscribeInput) {
	room, err := r.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		input.OnError(err)
		return
	}
	input.OnChange(room)
}

// ListActiveRooms retrieves every room that has not finished
func (r *redisRepository) ListActiveRooms(ctx context.Context, input *ListActiveRoomsInput) (*ListActiveRoomsOutput, error) {
	roomIDs, err := r.client.SMembers(ctx, activeRoomsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active room IDs: %w", err)
	}

	if len(roomIDs) == 0 {
		return &ListActiveRoomsOutput{Rooms: []*models.Room{}}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(roomIDs))
	for i, roomID := range roomIDs {
		cmds[i] = pipe.Get(ctx, roomKey(roomID))
	}

	// redis.Nil from a single GET is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get active rooms: %w", err)
	}

	rooms := make([]*models.Room, 0, len(roomIDs))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// deleted between SMEMBERS and GET
				continue
			}
			return nil, fmt.Errorf("failed to get room %s: %w", roomIDs[i], err)
		}

		room, err := decodeRoom(data)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return &ListActiveRoomsOutput{Rooms: rooms}, nil
}

func decodeRoom(data []byte) (*models.Room, error) {
	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	if room.Players == nil {
		room.Players = []*models.Player{}
	}
	for _, p := range room.Players {
		if p.ScoreCard == nil {
			p.ScoreCard = models.ScoreCard{}
		}
	}
	return &room, nil
}
