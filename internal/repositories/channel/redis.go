package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/yachtie/internal/common/clock"
	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/redis/go-redis/v9"
)

const channelKeyPrefix = "channel:"

// ErrBindingNotFound is returned when a channel has no room
var ErrBindingNotFound = errors.New("channel binding not found")

// Config holds configuration for the Redis channel repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL expires idle bindings, zero keeps them forever
	TTL time.Duration

	// Optional, defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed channel repository
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
		ttl:    cfg.TTL,
		clock:  cfg.Clock,
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}

	return repo, nil
}

func channelKey(channelID string) string {
	return channelKeyPrefix + channelID
}

// GetBinding retrieves a channel binding from Redis
func (r *redisRepository) GetBinding(ctx context.Context, input *GetBindingInput) (*models.ChannelBinding, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	data, err := r.client.Get(ctx, channelKey(input.ChannelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBindingNotFound
		}
		return nil, fmt.Errorf("failed to get channel binding: %w", err)
	}

	var binding models.ChannelBinding
	if err := json.Unmarshal(data, &binding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal channel binding: %w", err)
	}

	return &binding, nil
}

// SaveBinding persists a channel binding to Redis
func (r *redisRepository) SaveBinding(ctx context.Context, input *SaveBindingInput) error {
	if input == nil || input.Binding == nil {
		return errors.New("input and binding cannot be nil")
	}
	if input.Binding.ChannelID == "" || input.Binding.RoomID == "" {
		return errors.New("channel ID and room ID cannot be empty")
	}

	binding := *input.Binding
	binding.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(&binding)
	if err != nil {
		return fmt.Errorf("failed to marshal channel binding: %w", err)
	}

	if err := r.client.Set(ctx, channelKey(binding.ChannelID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save channel binding: %w", err)
	}

	return nil
}

// DeleteBinding removes a channel binding from Redis. Deleting a missing
// binding is not an error.
func (r *redisRepository) DeleteBinding(ctx context.Context, input *DeleteBindingInput) error {
	if input == nil || input.ChannelID == "" {
		return errors.New("input and channel ID cannot be empty")
	}

	key := channelKey(input.ChannelID)

	if input.RoomID == "" {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete channel binding: %w", err)
		}
		return nil
	}

	// only delete if the channel has not moved on to another room
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		var current models.ChannelBinding
		if err := json.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("failed to unmarshal channel binding: %w", err)
		}
		if current.RoomID != input.RoomID {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		return fmt.Errorf("failed to delete channel binding: %w", err)
	}
	return nil
}
