package room

import (
	"context"
	"errors"

	"github.com/KirkDiggler/yachtie/internal/common/uuid"
	"github.com/KirkDiggler/yachtie/internal/dice"
	"github.com/KirkDiggler/yachtie/internal/models"
	roomRepo "github.com/KirkDiggler/yachtie/internal/repositories/room"
	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	maxPlayers       int
	enforceTurnOrder bool
	conflictRetries  int

	roomRepo      roomRepo.Repository
	diceRoller    dice.Roller
	uuidGenerator uuid.UUID
	calculator    *scoring.Calculator
	log           zerolog.Logger
}

// New creates a new room service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 || maxPlayers > models.MaxPlayers {
		maxPlayers = models.MaxPlayers
	}

	calculator := cfg.Calculator
	if calculator == nil {
		calculator = scoring.NewCalculator(scoring.DefaultConfig())
	}

	retries := cfg.ConflictRetries
	if retries < 0 {
		retries = 0
	}

	return &service{
		maxPlayers:       maxPlayers,
		enforceTurnOrder: cfg.EnforceTurnOrder,
		conflictRetries:  retries,
		roomRepo:         cfg.RoomRepo,
		diceRoller:       cfg.DiceRoller,
		uuidGenerator:    cfg.UUIDGenerator,
		calculator:       calculator,
		log:              cfg.Logger.With().Str("component", "room_service").Logger(),
	}, nil
}

// CreateRoom creates a waiting room
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	room := NewRoom(input.Name, input.ExtendedRules)

	var playerID string
	if input.CreatorName != "" {
		playerID = s.uuidGenerator.NewUUID()
		joined, err := Join(room, playerID, input.CreatorName, s.maxPlayers)
		if err != nil {
			return nil, err
		}
		room = joined
	}

	out, err := s.roomRepo.CreateRoom(ctx, &roomRepo.CreateRoomInput{Room: room})
	if err != nil {
		return nil, StoreError(err)
	}

	s.log.Info().
		Str("room_id", out.Room.ID).
		Int("max_rounds", out.Room.MaxRounds).
		Bool("creator_joined", playerID != "").
		Msg("room created")

	return &CreateRoomOutput{
		RoomID:   out.Room.ID,
		PlayerID: playerID,
		Room:     out.Room,
	}, nil
}

// JoinRoom adds a player to a waiting room
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	playerID := s.uuidGenerator.NewUUID()

	_, updated, err := s.mutate(ctx, input.RoomID, func(room *models.Room) (*models.Room, error) {
		return Join(room, playerID, input.PlayerName, s.maxPlayers)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("room_id", input.RoomID).
		Str("player_id", playerID).
		Int("players", len(updated.Players)).
		Msg("player joined")

	return &JoinRoomOutput{
		PlayerID: playerID,
		Room:     updated,
	}, nil
}

// StartGame shuffles the players and begins round one
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	_, updated, err := s.mutate(ctx, input.RoomID, func(room *models.Room) (*models.Room, error) {
		return Start(room, s.diceRoller)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("room_id", input.RoomID).
		Int("players", len(updated.Players)).
		Msg("game started")

	return &StartGameOutput{Room: updated}, nil
}

// SubmitScore records a new score and advances the turn
func (s *service) SubmitScore(ctx context.Context, input *SubmitScoreInput) (*SubmitScoreOutput, error) {
	before, updated, err := s.mutate(ctx, input.RoomID, func(room *models.Room) (*models.Room, error) {
		return Submit(room, input.PlayerID, input.Category, input.Score, s.enforceTurnOrder)
	})
	if err != nil {
		return nil, err
	}

	finished := updated.Status.IsFinished()
	output := &SubmitScoreOutput{
		Room:           updated,
		GameFinished:   finished,
		RoundCompleted: finished || updated.CurrentRound > before.CurrentRound,
	}

	s.log.Info().
		Str("room_id", input.RoomID).
		Str("player_id", input.PlayerID).
		Str("category", string(input.Category)).
		Int("score", input.Score).
		Int("round", updated.CurrentRound).
		Bool("finished", finished).
		Msg("score submitted")

	return output, nil
}

// CorrectScore overwrites a score without touching the turn or round
func (s *service) CorrectScore(ctx context.Context, input *CorrectScoreInput) (*CorrectScoreOutput, error) {
	before, updated, err := s.mutate(ctx, input.RoomID, func(room *models.Room) (*models.Room, error) {
		return Correct(room, input.PlayerID, input.Category, input.Score)
	})
	if err != nil {
		return nil, err
	}

	previous, had := before.Player(input.PlayerID).ScoreCard[input.Category]

	s.log.Info().
		Str("room_id", input.RoomID).
		Str("player_id", input.PlayerID).
		Str("category", string(input.Category)).
		Int("score", input.Score).
		Msg("score corrected")

	return &CorrectScoreOutput{
		Room:          updated,
		PreviousScore: previous,
		HadScore:      had,
	}, nil
}

// RestartGame clears every score card, reshuffles and starts over
func (s *service) RestartGame(ctx context.Context, input *RestartGameInput) (*RestartGameOutput, error) {
	_, updated, err := s.mutate(ctx, input.RoomID, func(room *models.Room) (*models.Room, error) {
		return Restart(room, input.ExtendedRules, s.diceRoller)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("room_id", input.RoomID).
		Int("max_rounds", updated.MaxRounds).
		Msg("game restarted")

	return &RestartGameOutput{Room: updated}, nil
}

// DeleteRoom removes a room. Deleting a missing room succeeds.
func (s *service) DeleteRoom(ctx context.Context, input *DeleteRoomInput) (*DeleteRoomOutput, error) {
	if input.RoomID == "" {
		return nil, ErrInvalidRoomID
	}

	if err := s.roomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{RoomID: input.RoomID}); err != nil {
		return nil, StoreError(err)
	}

	s.log.Info().Str("room_id", input.RoomID).Msg("room deleted")

	return &DeleteRoomOutput{}, nil
}

// GetRoom retrieves a room
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	return &GetRoomOutput{Room: room}, nil
}

// GetRankings retrieves a room with its current standings
func (s *service) GetRankings(ctx context.Context, input *GetRankingsInput) (*GetRankingsOutput, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	return &GetRankingsOutput{
		Room:        room,
		Leaderboard: s.calculator.Leaderboard(room),
	}, nil
}

// ListRooms retrieves every room that has not finished
func (s *service) ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error) {
	out, err := s.roomRepo.ListActiveRooms(ctx, &roomRepo.ListActiveRoomsInput{})
	if err != nil {
		return nil, StoreError(err)
	}
	return &ListRoomsOutput{Rooms: out.Rooms}, nil
}

func (s *service) getRoom(ctx context.Context, roomID string) (*models.Room, error) {
	if roomID == "" {
		return nil, ErrInvalidRoomID
	}
	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: roomID})
	if err != nil {
		return nil, StoreError(err)
	}
	return room, nil
}

// mutate fetches the room, applies the transition and writes the result
// guarded by the fetched version. It returns the fetched and the stored room.
func (s *service) mutate(ctx context.Context, roomID string, transition func(*models.Room) (*models.Room, error)) (*models.Room, *models.Room, error) {
	for attempt := 0; ; attempt++ {
		current, err := s.getRoom(ctx, roomID)
		if err != nil {
			return nil, nil, err
		}

		next, err := transition(current)
		if err != nil {
			return nil, nil, err
		}

		// the write completes even if the caller goes away
		updated, err := s.roomRepo.UpdateRoom(context.WithoutCancel(ctx), &roomRepo.UpdateRoomInput{
			RoomID:          roomID,
			ExpectedVersion: current.Version,
			Patch:           patchFor(next),
		})
		if err == nil {
			return current, updated, nil
		}

		if errors.Is(err, roomRepo.ErrVersionConflict) && attempt < s.conflictRetries {
			s.log.Debug().
				Str("room_id", roomID).
				Int("attempt", attempt+1).
				Msg("version conflict, retrying")
			continue
		}

		if errors.Is(err, roomRepo.ErrVersionConflict) {
			s.log.Warn().Str("room_id", roomID).Msg("concurrent modification")
		}
		return nil, nil, StoreError(err)
	}
}

func patchFor(room *models.Room) *roomRepo.RoomPatch {
	return &roomRepo.RoomPatch{
		Players:            room.Players,
		CurrentPlayerIndex: &room.CurrentPlayerIndex,
		CurrentRound:       &room.CurrentRound,
		MaxRounds:          &room.MaxRounds,
		Status:             &room.Status,
		ExtendedRules:      &room.ExtendedRules,
	}
}
