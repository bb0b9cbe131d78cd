package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server
type Config struct {
	Log struct {
		Level  string // debug|info|warn|error
		Format string // console|json
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	HTTP struct {
		// Addr disables the HTTP API when empty
		Addr              string
		ReadHeaderTimeout time.Duration
		IdleTimeout       time.Duration
		ShutdownTimeout   time.Duration
	}

	Discord struct {
		// Token disables the bot when empty
		Token         string
		ApplicationID string
		GuildID       string

		// BindingTTL expires remembered channel boards, zero keeps them
		BindingTTL time.Duration
	}

	Game struct {
		MaxPlayers       int
		EnforceTurnOrder bool
		ConflictRetries  int
		BonusThreshold   int
		BonusScore       int
		DiceSeed         int64
	}
}

// Load reads an optional .env file and then the environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// existing environment variables win over the file
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return FromEnv()
}

// FromEnv builds the config from environment variables only
func FromEnv() (*Config, error) {
	c := &Config{}

	c.Log.Level = strings.ToLower(envString("LOG_LEVEL", "info"))
	c.Log.Format = strings.ToLower(envString("LOG_FORMAT", "console"))

	c.Redis.Addr = envString("REDIS_ADDR", "localhost:6379")
	c.Redis.Password = envString("REDIS_PASSWORD", "")
	c.Redis.DB = envInt("REDIS_DB", 0)

	c.HTTP.Addr = envString("HTTP_ADDR", ":8080")
	c.HTTP.ReadHeaderTimeout = envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	c.HTTP.IdleTimeout = envDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.HTTP.ShutdownTimeout = envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	c.Discord.Token = envString("DISCORD_TOKEN", "")
	c.Discord.ApplicationID = envString("APPLICATION_ID", "")
	c.Discord.GuildID = envString("GUILD_ID", "")
	c.Discord.BindingTTL = envDuration("CHANNEL_BINDING_TTL", 7*24*time.Hour)

	c.Game.MaxPlayers = envInt("MAX_PLAYERS", 10)
	c.Game.EnforceTurnOrder = envBool("ENFORCE_TURN_ORDER", true)
	c.Game.ConflictRetries = envInt("CONFLICT_RETRIES", 0)
	c.Game.BonusThreshold = envInt("BONUS_THRESHOLD", 63)
	c.Game.BonusScore = envInt("BONUS_SCORE", 35)
	c.Game.DiceSeed = int64(envInt("DICE_SEED", 0))

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is empty")
	}
	if c.HTTP.Addr == "" && c.Discord.Token == "" {
		return errors.New("nothing to run: set HTTP_ADDR or DISCORD_TOKEN")
	}
	if c.Discord.Token != "" && c.Discord.ApplicationID == "" {
		return errors.New("APPLICATION_ID is required with DISCORD_TOKEN")
	}
	if c.Discord.BindingTTL < 0 {
		return fmt.Errorf("CHANNEL_BINDING_TTL=%s cannot be negative", c.Discord.BindingTTL)
	}
	if c.Game.MaxPlayers < 1 || c.Game.MaxPlayers > 10 {
		return fmt.Errorf("MAX_PLAYERS=%d out of range 1..10", c.Game.MaxPlayers)
	}
	if c.Game.ConflictRetries < 0 {
		return fmt.Errorf("CONFLICT_RETRIES=%d cannot be negative", c.Game.ConflictRetries)
	}
	if c.Game.BonusThreshold < 1 {
		return fmt.Errorf("BONUS_THRESHOLD=%d must be positive", c.Game.BonusThreshold)
	}
	if c.Game.BonusScore < 0 {
		return fmt.Errorf("BONUS_SCORE=%d cannot be negative", c.Game.BonusScore)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want console|json)", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL=%q", c.Log.Level)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
