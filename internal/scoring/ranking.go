package scoring

import (
	"sort"

	"github.com/KirkDiggler/yachtie/internal/models"
)

const (
	// DefaultBonusThreshold is the upper section sum that earns the bonus
	DefaultBonusThreshold = 63

	// DefaultBonusScore is added to the total once the threshold is reached
	DefaultBonusScore = 35
)

// Config holds the bonus rule constants
type Config struct {
	BonusThreshold int
	BonusScore     int
}

// DefaultConfig returns the standard 63/35 upper bonus
func DefaultConfig() Config {
	return Config{
		BonusThreshold: DefaultBonusThreshold,
		BonusScore:     DefaultBonusScore,
	}
}

// Calculator derives totals and rankings from score cards
type Calculator struct {
	config Config
}

// NewCalculator creates a calculator. A zero Config means the defaults.
func NewCalculator(cfg Config) *Calculator {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if cfg.BonusThreshold <= 0 {
		cfg.BonusThreshold = DefaultBonusThreshold
	}
	if cfg.BonusScore < 0 {
		cfg.BonusScore = 0
	}
	return &Calculator{config: cfg}
}

// Config returns the bonus constants in use
func (c *Calculator) Config() Config {
	return c.config
}

// Totals computes the section sums, bonus and total of a score card
func (c *Calculator) Totals(card models.ScoreCard) models.Totals {
	var t models.Totals
	for _, cat := range models.UpperSection {
		t.Upper += card[cat]
	}
	for _, cat := range models.LowerSection {
		t.Lower += card[cat]
	}
	if t.Upper >= c.config.BonusThreshold {
		t.Bonus = c.config.BonusScore
	}
	t.Total = t.Upper + t.Lower + t.Bonus
	return t
}

// Total returns only the grand total of a score card
func (c *Calculator) Total(card models.ScoreCard) int {
	return c.Totals(card).Total
}

// Rankings orders the room's players by total, highest first.
// Equal totals share a rank and keep their turn order; the next distinct
// total is ranked by its position, so [50, 50, 30] ranks [1, 1, 3].
func (c *Calculator) Rankings(room *models.Room) []*models.Standing {
	if room == nil {
		return nil
	}

	standings := make([]*models.Standing, 0, len(room.Players))
	for _, p := range room.Players {
		totals := c.Totals(p.ScoreCard)
		standings = append(standings, &models.Standing{
			Player:     p,
			Totals:     totals,
			TotalScore: totals.Total,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})

	for i, s := range standings {
		if i > 0 && standings[i-1].TotalScore == s.TotalScore {
			s.Rank = standings[i-1].Rank
			continue
		}
		s.Rank = i + 1
	}

	return standings
}

// Leaderboard wraps Rankings with the room id
func (c *Calculator) Leaderboard(room *models.Room) *models.Leaderboard {
	if room == nil {
		return nil
	}
	return &models.Leaderboard{
		RoomID:    room.ID,
		Standings: c.Rankings(room),
	}
}

// TiedPlayers returns every standing sharing the given rank
func (c *Calculator) TiedPlayers(room *models.Room, rank int) []*models.Standing {
	var tied []*models.Standing
	for _, s := range c.Rankings(room) {
		if s.Rank == rank {
			tied = append(tied, s)
		}
	}
	return tied
}
