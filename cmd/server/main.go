package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/yachtie/internal/common/clock"
	"github.com/KirkDiggler/yachtie/internal/common/uuid"
	"github.com/KirkDiggler/yachtie/internal/config"
	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/handlers/discord"
	"github.com/KirkDiggler/yachtie/internal/handlers/httpapi"
	"github.com/KirkDiggler/yachtie/internal/repositories/channel"
	"github.com/KirkDiggler/yachtie/internal/repositories/room"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/KirkDiggler/yachtie/internal/services/feed"
	"github.com/KirkDiggler/yachtie/internal/services/messaging"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "yachtie: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
	}

	systemClock := clock.New()
	idGenerator := uuid.New()

	roomRepo, err := room.NewRedis(&room.Config{
		RedisClient:   redisClient,
		UUIDGenerator: idGenerator,
		Clock:         systemClock,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create room repository: %w", err)
	}

	calculator := scoring.NewCalculator(scoring.Config{
		BonusThreshold: cfg.Game.BonusThreshold,
		BonusScore:     cfg.Game.BonusScore,
	})

	rooms, err := roomService.New(&roomService.Config{
		MaxPlayers:       cfg.Game.MaxPlayers,
		EnforceTurnOrder: cfg.Game.EnforceTurnOrder,
		ConflictRetries:  cfg.Game.ConflictRetries,
		RoomRepo:         roomRepo,
		DiceRoller:       dice.New(&dice.Config{Seed: cfg.Game.DiceSeed}),
		UUIDGenerator:    idGenerator,
		Calculator:       calculator,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create room service: %w", err)
	}

	roomFeed, err := feed.New(&feed.Config{
		RoomRepo: roomRepo,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create room feed: %w", err)
	}
	defer roomFeed.Close()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.HTTP.Addr != "" {
		handler, err := httpapi.New(&httpapi.Config{
			RoomService: rooms,
			Feed:        roomFeed,
			Calculator:  calculator,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create HTTP handler: %w", err)
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler.Routes(),
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		}

		g.Go(func() error {
			logger.Info().Str("addr", cfg.HTTP.Addr).Msg("http server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			logger.Info().Msg("http server shutting down")
			// hijacked websocket connections are not tracked by Shutdown
			roomFeed.Close()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if cfg.Discord.Token != "" {
		channelRepo, err := channel.NewRedis(&channel.Config{
			RedisClient: redisClient,
			TTL:         cfg.Discord.BindingTTL,
			Clock:       systemClock,
		})
		if err != nil {
			return fmt.Errorf("failed to create channel repository: %w", err)
		}

		messages, err := messaging.NewService(&messaging.ServiceConfig{
			Roller: dice.New(nil),
		})
		if err != nil {
			return fmt.Errorf("failed to create messaging service: %w", err)
		}

		bot, err := discord.New(&discord.Config{
			Token:         cfg.Discord.Token,
			ApplicationID: cfg.Discord.ApplicationID,
			GuildID:       cfg.Discord.GuildID,
			RoomService:   rooms,
			Feed:          roomFeed,
			Calculator:    calculator,
			ChannelRepo:   channelRepo,
			Messages:      messages,
			MaxPlayers:    cfg.Game.MaxPlayers,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}

		g.Go(func() error {
			if err := bot.Start(); err != nil {
				return err
			}
			<-gctx.Done()
			logger.Info().Msg("discord bot shutting down")
			return bot.Stop()
		})
	}

	err = g.Wait()
	logger.Info().Msg("shut down")
	return err
}

// newLogger builds the root logger from the log settings
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Log.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "yachtie").Logger()
}
