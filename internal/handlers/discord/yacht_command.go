package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/KirkDiggler/yachtie/internal/repositories/channel"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/KirkDiggler/yachtie/internal/services/feed"
	"github.com/KirkDiggler/yachtie/internal/services/messaging"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/KirkDiggler/yachtie/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	commandTimeout    = 5 * time.Second
	defaultRoomName   = "Yacht"
	optName           = "name"
	optThreeOfAKind   = "three_of_a_kind"
	optFixedFullHouse = "fixed_full_house"
	optCategory       = "category"
	optPoints         = "points"
	optPlayer         = "player"
)

var (
	errNoTable   = errors.New("there is no room in this channel, use `/yacht create` to start one")
	errTableBusy = errors.New("there's already a game in this channel, use `/yacht delete` to clear it first")
	errNotSeated = errors.New("you are not playing in this room, use `/yacht join` first")

	ErrNilYachtConfig = errors.New("yacht command config cannot be nil")
	ErrNilRoomService = errors.New("room service cannot be nil")
	ErrNilRoomFeed    = errors.New("room feed cannot be nil")
)

var diceOptions = []string{"d1", "d2", "d3", "d4", "d5"}

// RoomFeed hands out shared room subscriptions
type RoomFeed interface {
	Acquire(ctx context.Context, roomID string) (*feed.Handle, error)
}

// YachtCommandConfig holds the dependencies of the yacht command
type YachtCommandConfig struct {
	RoomService roomService.Service
	Feed        RoomFeed
	Calculator  *scoring.Calculator

	// ChannelRepo remembers boards across restarts, optional
	ChannelRepo channel.Repository

	// Messages adds flavor text to announcements, optional
	Messages messaging.Service

	// MaxPlayers is the room capacity, defaults to models.MaxPlayers
	MaxPlayers int

	// Roller rolls a hand for /yacht dice without faces, optional
	Roller dice.Roller

	Logger zerolog.Logger
}

// YachtCommand handles the /yacht command and the buttons of its board
type YachtCommand struct {
	BaseCommand
	rooms      roomService.Service
	feed       RoomFeed
	calculator *scoring.Calculator
	channels   channel.Repository
	messages   messaging.Service
	maxPlayers int
	roller     dice.Roller
	tables     *tables
	log        zerolog.Logger
}

// NewYachtCommand creates a new yacht command handler
func NewYachtCommand(cfg *YachtCommandConfig) (*YachtCommand, error) {
	if cfg == nil {
		return nil, ErrNilYachtConfig
	}
	if cfg.RoomService == nil {
		return nil, ErrNilRoomService
	}
	if cfg.Feed == nil {
		return nil, ErrNilRoomFeed
	}

	calc := cfg.Calculator
	if calc == nil {
		calc = scoring.NewCalculator(scoring.DefaultConfig())
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.New(nil)
	}

	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 || maxPlayers > models.MaxPlayers {
		maxPlayers = models.MaxPlayers
	}

	zero := 0.0
	one := 1.0

	categoryChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(categoryLabels))
	for _, c := range (models.ExtendedRules{EnableThreeOfAKind: true}).Categories() {
		categoryChoices = append(categoryChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  categoryLabel(c),
			Value: string(c),
		})
	}

	ruleOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        optThreeOfAKind,
			Description: "Add the three of a kind category and a 13th round",
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        optFixedFullHouse,
			Description: "Full house always scores 25",
		},
	}

	scoreOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optCategory,
			Description: "Category to fill",
			Required:    true,
			Choices:     categoryChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        optPoints,
			Description: "Points scored",
			Required:    true,
			MinValue:    &zero,
		},
	}

	faces := make([]*discordgo.ApplicationCommandOption, 0, len(diceOptions))
	for _, name := range diceOptions {
		faces = append(faces, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        name,
			Description: "Die face, leave all five empty to roll",
			MinValue:    &one,
			MaxValue:    6,
		})
	}

	return &YachtCommand{
		BaseCommand: BaseCommand{
			Name:        "yacht",
			Description: "Yacht dice scorekeeper",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a room in this channel",
					Options: append([]*discordgo.ApplicationCommandOption{{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optName,
						Description: "Room name",
					}}, ruleOptions...),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join the room in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start the game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "score",
					Description: "Record your score for this turn",
					Options:     scoreOptions,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "fix",
					Description: "Correct a score that was already recorded",
					Options: append(append([]*discordgo.ApplicationCommandOption{}, scoreOptions...), &discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optPlayer,
						Description: "Player to correct, defaults to you",
					}),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "restart",
					Description: "Play again with the same players",
					Options:     ruleOptions,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "board",
					Description: "Post the board again",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "dice",
					Description: "Show what a hand scores in every category",
					Options:     faces,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete the room in this channel",
				},
			},
		},
		rooms:      cfg.RoomService,
		feed:       cfg.Feed,
		calculator: calc,
		channels:   cfg.ChannelRepo,
		messages:   cfg.Messages,
		maxPlayers: maxPlayers,
		roller:     roller,
		tables:     newTables(),
		log:        cfg.Logger.With().Str("component", "discord").Logger(),
	}, nil
}

// Handle processes a Discord interaction for the yacht command
func (c *YachtCommand) Handle(s Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	var err error
	switch sub.Name {
	case "create":
		err = c.handleCreate(ctx, s, i, opts)
	case "join":
		err = c.handleJoin(ctx, s, i)
	case "start":
		err = c.handleStart(ctx, s, i)
	case "score":
		err = c.handleScore(ctx, s, i, opts)
	case "fix":
		err = c.handleFix(ctx, s, i, opts)
	case "restart":
		err = c.handleRestart(ctx, s, i, rulesFrom(opts))
	case "board":
		err = c.handleBoard(ctx, s, i)
	case "dice":
		err = c.handleDice(ctx, s, i, opts)
	case "delete":
		err = c.handleDelete(ctx, s, i)
	default:
		err = fmt.Errorf("unknown subcommand %q", sub.Name)
	}

	if err != nil {
		c.log.Warn().Err(err).
			Str("channel_id", i.ChannelID).
			Str("subcommand", sub.Name).
			Msg("command failed")
		return RespondWithError(s, i, userMessage(err))
	}
	return nil
}

// HandleComponent processes clicks on the board buttons
func (c *YachtCommand) HandleComponent(s Session, i *discordgo.InteractionCreate) (bool, error) {
	customID := i.MessageComponentData().CustomID

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var err error
	switch customID {
	case ButtonJoinRoom:
		err = c.handleJoin(ctx, s, i)
	case ButtonStartGame:
		err = c.handleStart(ctx, s, i)
	case ButtonRestartGame:
		var rules models.ExtendedRules
		if t, lookupErr := c.table(ctx, s, i.ChannelID); lookupErr == nil {
			if room := t.handle.Current(); room != nil {
				rules = room.ExtendedRules
			}
		}
		err = c.handleRestart(ctx, s, i, rules)
	default:
		return false, nil
	}

	if err != nil {
		c.log.Warn().Err(err).
			Str("channel_id", i.ChannelID).
			Str("button", customID).
			Msg("button failed")
		return true, RespondWithError(s, i, userMessage(err))
	}
	return true, nil
}

// Close unbinds every channel and releases its subscription
func (c *YachtCommand) Close() {
	for _, t := range c.tables.drain() {
		t.close()
	}
}

func (c *YachtCommand) handleCreate(ctx context.Context, s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	t, err := c.table(ctx, s, i.ChannelID)
	switch {
	case errors.Is(err, errNoTable):
		// free channel
	case err != nil:
		return err
	default:
		if room := t.handle.Current(); room != nil && !room.Status.IsFinished() {
			return errTableBusy
		}
	}

	name := defaultRoomName
	if o, ok := opts[optName]; ok && o.StringValue() != "" {
		name = o.StringValue()
	}

	out, err := c.rooms.CreateRoom(ctx, &roomService.CreateRoomInput{
		Name:          name,
		ExtendedRules: rulesFrom(opts),
		CreatorName:   displayName(i),
	})
	if err != nil {
		return err
	}

	if err := c.bind(ctx, s, i.ChannelID, out.RoomID); err != nil {
		return err
	}

	c.log.Info().
		Str("channel_id", i.ChannelID).
		Str("room_id", out.RoomID).
		Msg("room created")

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Created **%s**. You're in! Others can `/yacht join`.", name))
}

func (c *YachtCommand) handleJoin(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	out, err := c.rooms.JoinRoom(ctx, &roomService.JoinRoomInput{
		RoomID:     t.roomID,
		PlayerName: displayName(i),
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("**%s** joined **%s**. %d players so far.", displayName(i), out.Room.Name, len(out.Room.Players))
	if c.messages != nil {
		flavor, err := c.messages.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{
			PlayerName:  displayName(i),
			PlayerCount: len(out.Room.Players),
			MaxPlayers:  c.maxPlayers,
		})
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to get join message")
		} else {
			msg += " " + flavor.Message
		}
	}
	return RespondWithMessage(s, i, msg)
}

func (c *YachtCommand) handleStart(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	out, err := c.rooms.StartGame(ctx, &roomService.StartGameInput{RoomID: t.roomID})
	if err != nil {
		return err
	}

	first := out.Room.CurrentPlayer()
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Game started! **%s** goes first.", first.Name))
}

func (c *YachtCommand) handleScore(ctx context.Context, s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	player, err := c.seat(ctx, t.roomID, displayName(i))
	if err != nil {
		return err
	}

	category := models.Category(opts[optCategory].StringValue())
	points := int(opts[optPoints].IntValue())
	bonusBefore := c.calculator.Totals(player.ScoreCard).Bonus

	out, err := c.rooms.SubmitScore(ctx, &roomService.SubmitScoreInput{
		RoomID:   t.roomID,
		PlayerID: player.ID,
		Category: category,
		Score:    points,
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("**%s** scored %d in %s.", player.Name, points, categoryLabel(category))
	if c.messages != nil {
		var bonus int
		if updated := out.Room.Player(player.ID); updated != nil {
			bonus = c.calculator.Totals(updated.ScoreCard).Bonus
		}
		flavor, err := c.messages.GetScoreMessage(ctx, &messaging.GetScoreMessageInput{
			PlayerName:  player.Name,
			Category:    category,
			Score:       points,
			BonusEarned: bonusBefore == 0 && bonus > 0,
			BonusScore:  bonus,
		})
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to get score message")
		} else {
			msg += " " + flavor.Message
		}
	}

	switch {
	case out.GameFinished:
		msg += " That's the game! 🏁"
		msg = c.gameOver(ctx, out.Room, msg)
	case out.RoundCompleted:
		msg += fmt.Sprintf(" Round %d begins.", out.Room.CurrentRound)
	}
	return RespondWithMessage(s, i, msg)
}

func (c *YachtCommand) handleFix(ctx context.Context, s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	name := displayName(i)
	if o, ok := opts[optPlayer]; ok && o.StringValue() != "" {
		name = o.StringValue()
	}

	player, err := c.seat(ctx, t.roomID, name)
	if err != nil {
		return err
	}

	category := models.Category(opts[optCategory].StringValue())
	points := int(opts[optPoints].IntValue())

	out, err := c.rooms.CorrectScore(ctx, &roomService.CorrectScoreInput{
		RoomID:   t.roomID,
		PlayerID: player.ID,
		Category: category,
		Score:    points,
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("**%s** %s set to %d", player.Name, categoryLabel(category), points)
	if out.HadScore {
		msg += fmt.Sprintf(" (was %d)", out.PreviousScore)
	}
	return RespondWithMessage(s, i, msg+".")
}

func (c *YachtCommand) handleRestart(ctx context.Context, s Session, i *discordgo.InteractionCreate, rules models.ExtendedRules) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	out, err := c.rooms.RestartGame(ctx, &roomService.RestartGameInput{
		RoomID:        t.roomID,
		ExtendedRules: rules,
	})
	if err != nil {
		return err
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("New game! **%s** goes first.", out.Room.CurrentPlayer().Name))
}

func (c *YachtCommand) handleBoard(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	// a fresh subscription and message replace the old board
	if err := c.bind(ctx, s, i.ChannelID, t.roomID); err != nil {
		return err
	}
	return RespondWithEphemeralMessage(s, i, "Board posted.")
}

func (c *YachtCommand) handleDice(ctx context.Context, s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	hand := make([]int, 0, len(diceOptions))
	for _, name := range diceOptions {
		if o, ok := opts[name]; ok {
			hand = append(hand, int(o.IntValue()))
		}
	}
	switch len(hand) {
	case 0:
		hand = dice.RollHand(c.roller, len(diceOptions))
	case len(diceOptions):
	default:
		return scoring.ErrInvalidDice
	}

	var rules models.ExtendedRules
	var open []models.Category
	if t, err := c.table(ctx, s, i.ChannelID); err == nil {
		if room := t.handle.Current(); room != nil {
			rules = room.ExtendedRules
			if player := room.PlayerByName(displayName(i)); player != nil {
				open = session.OpenCategories(room, player)
			}
		}
	}

	scores, err := scoring.Evaluate(hand, rules)
	if err != nil {
		return err
	}

	return RespondWithEphemeralEmbed(s, i, renderDiceScores(hand, scores, rules, open))
}

func (c *YachtCommand) handleDelete(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	t, err := c.table(ctx, s, i.ChannelID)
	if err != nil {
		return err
	}

	if _, err := c.rooms.DeleteRoom(ctx, &roomService.DeleteRoomInput{RoomID: t.roomID}); err != nil {
		return err
	}

	// the feed reports the deletion too, whichever comes first closes the board
	c.closeBoard(s, t)

	c.log.Info().
		Str("channel_id", i.ChannelID).
		Str("room_id", t.roomID).
		Msg("room deleted")

	return RespondWithEphemeralMessage(s, i, "Room deleted.")
}

// seat finds the player with the given name in the room
func (c *YachtCommand) seat(ctx context.Context, roomID, name string) (*models.Player, error) {
	out, err := c.rooms.GetRoom(ctx, &roomService.GetRoomInput{RoomID: roomID})
	if err != nil {
		return nil, err
	}
	player := out.Room.PlayerByName(name)
	if player == nil {
		return nil, errNotSeated
	}
	return player, nil
}

// table returns the channel's table, resuming a board remembered from an
// earlier run when the channel is not bound in memory
func (c *YachtCommand) table(ctx context.Context, s Session, channelID string) (*table, error) {
	if t := c.tables.get(channelID); t != nil {
		return t, nil
	}
	if c.channels == nil {
		return nil, errNoTable
	}

	binding, err := c.channels.GetBinding(ctx, &channel.GetBindingInput{ChannelID: channelID})
	if errors.Is(err, channel.ErrBindingNotFound) {
		return nil, errNoTable
	}
	if err != nil {
		return nil, roomService.StoreError(err)
	}

	handle, err := c.feed.Acquire(ctx, binding.RoomID)
	if err != nil {
		return nil, err
	}
	room, err := handle.Wait(ctx)
	if err != nil {
		handle.Release()
		if roomService.KindOf(err) == roomService.KindNotFound {
			c.forget(channelID, binding.RoomID)
			return nil, errNoTable
		}
		return nil, err
	}

	t := c.attach(s, channelID, binding.RoomID, binding.MessageID, handle, 0)
	c.refresh(s, t, room, nil)

	c.log.Info().
		Str("channel_id", channelID).
		Str("room_id", binding.RoomID).
		Str("message_id", binding.MessageID).
		Msg("board resumed")
	return t, nil
}

// bind posts a board for the room in the channel and keeps it current
func (c *YachtCommand) bind(ctx context.Context, s Session, channelID, roomID string) error {
	handle, err := c.feed.Acquire(ctx, roomID)
	if err != nil {
		return err
	}

	room, err := handle.Wait(ctx)
	if err != nil {
		handle.Release()
		return err
	}

	embed, components := renderBoard(session.Bind(room, c.calculator, ""))
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		handle.Release()
		return fmt.Errorf("failed to post board: %w", err)
	}

	t := c.attach(s, channelID, roomID, msg.ID, handle, room.Version)

	if c.channels != nil {
		if err := c.channels.SaveBinding(ctx, &channel.SaveBindingInput{
			Binding: &models.ChannelBinding{
				ChannelID: channelID,
				RoomID:    roomID,
				MessageID: msg.ID,
			},
		}); err != nil {
			// the board still works, it just won't survive a restart
			c.log.Warn().Err(err).Str("channel_id", channelID).Msg("failed to save channel binding")
		}
	}

	// catch a change that landed before the listener was registered
	if current := handle.Current(); current != nil && current.Version > room.Version {
		c.refresh(s, t, current, nil)
	}
	return nil
}

// attach binds a posted board to the channel and follows the room's changes
func (c *YachtCommand) attach(s Session, channelID, roomID, messageID string, handle *feed.Handle, rendered int64) *table {
	t := &table{
		channelID: channelID,
		roomID:    roomID,
		messageID: messageID,
		handle:    handle,
		rendered:  rendered,
	}
	stop := handle.OnChange(func(room *models.Room, err error) {
		c.refresh(s, t, room, err)
	})
	t.mu.Lock()
	t.stop = stop
	t.mu.Unlock()

	if old := c.tables.put(t); old != nil {
		old.close()
	}
	return t
}

// forget drops the stored binding if it still points at the room
func (c *YachtCommand) forget(channelID, roomID string) {
	if c.channels == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := c.channels.DeleteBinding(ctx, &channel.DeleteBindingInput{
		ChannelID: channelID,
		RoomID:    roomID,
	}); err != nil {
		c.log.Warn().Err(err).Str("channel_id", channelID).Msg("failed to delete channel binding")
	}
}

// gameOver appends the winner announcement to msg
func (c *YachtCommand) gameOver(ctx context.Context, room *models.Room, msg string) string {
	if c.messages == nil {
		return msg
	}

	input := &messaging.GetGameOverMessageInput{}
	for _, standing := range c.calculator.TiedPlayers(room, 1) {
		input.Winners = append(input.Winners, standing.Player.Name)
		input.Score = standing.TotalScore
	}

	out, err := c.messages.GetGameOverMessage(ctx, input)
	if err != nil {
		c.log.Warn().Err(err).Str("room_id", room.ID).Msg("failed to get game over message")
		return msg
	}
	return msg + "\n" + out.Message
}

// refresh redraws the board after a feed delivery
func (c *YachtCommand) refresh(s Session, t *table, room *models.Room, err error) {
	if err != nil {
		if roomService.KindOf(err) == roomService.KindNotFound {
			c.closeBoard(s, t)
			return
		}
		c.log.Warn().Err(err).Str("room_id", t.roomID).Msg("board refresh failed")
		return
	}

	if !t.claim(room.Version) {
		return
	}

	embed, components := renderBoard(session.Bind(room, c.calculator, ""))
	embeds := []*discordgo.MessageEmbed{embed}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         t.messageID,
		Channel:    t.channelID,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		c.log.Warn().Err(err).
			Str("room_id", t.roomID).
			Str("message_id", t.messageID).
			Msg("failed to edit board")
	}
}

// closeBoard unbinds the table and marks its board closed, at most once
func (c *YachtCommand) closeBoard(s Session, t *table) {
	if !c.tables.remove(t) {
		return
	}
	t.close()
	c.forget(t.channelID, t.roomID)

	embeds := []*discordgo.MessageEmbed{renderClosedBoard(t.roomID)}
	components := []discordgo.MessageComponent{}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         t.messageID,
		Channel:    t.channelID,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		c.log.Warn().Err(err).Str("room_id", t.roomID).Msg("failed to close board")
	}
}

func rulesFrom(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) models.ExtendedRules {
	var rules models.ExtendedRules
	if o, ok := opts[optThreeOfAKind]; ok {
		rules.EnableThreeOfAKind = o.BoolValue()
	}
	if o, ok := opts[optFixedFullHouse]; ok {
		rules.FullHouseFixedScore = o.BoolValue()
	}
	return rules
}

// userMessage turns an error into something fit for a channel
func userMessage(err error) string {
	switch {
	case errors.Is(err, roomService.ErrConcurrentModification):
		return "Someone else updated the room at the same time, try again."
	case errors.Is(err, roomService.ErrRoomNotFound):
		return "This room no longer exists."
	}

	switch roomService.KindOf(err) {
	case roomService.KindUnavailable:
		return "The scorekeeper can't reach its store right now, try again shortly."
	case roomService.KindInternal:
		if errors.Is(err, errNoTable) || errors.Is(err, errTableBusy) || errors.Is(err, errNotSeated) {
			return err.Error()
		}
		return "Something went wrong, try again."
	default:
		return err.Error()
	}
}
