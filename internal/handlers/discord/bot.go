// Package discord runs the scorekeeper as a Discord bot.
package discord

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/yachtie/internal/repositories/channel"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/KirkDiggler/yachtie/internal/services/messaging"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	yacht      *YachtCommand
	config     *Config
	log        zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	RoomService roomService.Service
	Feed        RoomFeed

	// Optional, defaults to the standard bonus rules
	Calculator *scoring.Calculator

	// Optional, lets boards survive a restart
	ChannelRepo channel.Repository

	// Optional flavor text for announcements
	Messages messaging.Service

	MaxPlayers int

	Logger zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	yacht, err := NewYachtCommand(&YachtCommandConfig{
		RoomService: cfg.RoomService,
		Feed:        cfg.Feed,
		Calculator:  cfg.Calculator,
		ChannelRepo: cfg.ChannelRepo,
		Messages:    cfg.Messages,
		MaxPlayers:  cfg.MaxPlayers,
		Logger:      cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		yacht:      yacht,
		config:     cfg,
		log:        cfg.Logger.With().Str("component", "discord_bot").Logger(),
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.yacht); err != nil {
		return fmt.Errorf("failed to register yacht command: %w", err)
	}

	b.log.Info().Msg("bot is running")
	return nil
}

// Stop removes the registered commands, releases every board and closes the connection
func (b *Bot) Stop() error {
	appID, guildID := b.scope()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			b.log.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			b.log.Info().Str("command", cmdName).Msg("deleted command")
		}
	}

	b.yacht.Close()

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID, guildID := b.scope()

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", guildID).
		Msg("registered command")

	return nil
}

// scope returns where commands live; an empty guild registers them globally
func (b *Bot) scope() (appID, guildID string) {
	appID = b.config.ApplicationID
	if appID == "" && b.session.State != nil && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}
	return appID, b.config.GuildID
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.dispatch(s, i)
}

// dispatch routes an interaction to its command or component owner
func (b *Bot) dispatch(s Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.log.Error().Err(err).Str("command", name).Msg("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for _, h := range b.commands {
			ch, ok := h.(ComponentHandler)
			if !ok {
				continue
			}
			handled, err := ch.HandleComponent(s, i)
			if err != nil {
				b.log.Error().Err(err).Str("custom_id", customID).Msg("error handling component")
			}
			if handled {
				return
			}
		}
		if err := RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID)); err != nil {
			b.log.Error().Err(err).Msg("failed to respond")
		}
	}
}
