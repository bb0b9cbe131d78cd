package scoring

import (
	"testing"

	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/stretchr/testify/suite"
)

type RankingTestSuite struct {
	suite.Suite
	calc *Calculator
}

func (s *RankingTestSuite) SetupTest() {
	s.calc = NewCalculator(DefaultConfig())
}

func TestRankingTestSuite(t *testing.T) {
	suite.Run(t, new(RankingTestSuite))
}

func player(id string, card models.ScoreCard) *models.Player {
	return &models.Player{ID: id, Name: id, ScoreCard: card}
}

func (s *RankingTestSuite) TestTotals_BonusAtThreshold() {
	// 3+6+9+12+15+18 = 63
	card := models.ScoreCard{
		models.CategoryAce:    3,
		models.CategoryDual:   6,
		models.CategoryTriple: 9,
		models.CategoryQuad:   12,
		models.CategoryPenta:  15,
		models.CategoryHexa:   18,
		models.CategoryChance: 20,
	}

	totals := s.calc.Totals(card)

	s.Equal(63, totals.Upper)
	s.Equal(20, totals.Lower)
	s.Equal(DefaultBonusScore, totals.Bonus)
	s.Equal(63+20+35, totals.Total)
}

func (s *RankingTestSuite) TestTotals_NoBonusBelowThreshold() {
	card := models.ScoreCard{
		models.CategoryAce:    2,
		models.CategoryDual:   6,
		models.CategoryTriple: 9,
		models.CategoryQuad:   12,
		models.CategoryPenta:  15,
		models.CategoryHexa:   18,
	}

	totals := s.calc.Totals(card)

	s.Equal(62, totals.Upper)
	s.Equal(0, totals.Bonus)
	s.Equal(62, totals.Total)
}

func (s *RankingTestSuite) TestTotals_IsPure() {
	card := models.ScoreCard{
		models.CategoryHexa:          24,
		models.CategoryYacht:         50,
		models.CategoryThreeOfAKind:  17,
		models.CategoryLargeStraight: 30,
	}

	first := s.calc.Totals(card)
	second := s.calc.Totals(card)

	s.Equal(first, second)
	s.Equal(24, first.Upper)
	s.Equal(97, first.Lower)
	s.Len(card, 4)
}

func (s *RankingTestSuite) TestTotals_CustomBonus() {
	calc := NewCalculator(Config{BonusThreshold: 10, BonusScore: 5})
	totals := calc.Totals(models.ScoreCard{models.CategoryPenta: 10})
	s.Equal(5, totals.Bonus)
	s.Equal(15, totals.Total)
}

func (s *RankingTestSuite) TestNewCalculator_ZeroConfigUsesDefaults() {
	s.Equal(DefaultConfig(), NewCalculator(Config{}).Config())
}

func (s *RankingTestSuite) TestRankings_DenseCompetitionRanking() {
	room := &models.Room{
		Players: []*models.Player{
			player("a", models.ScoreCard{models.CategoryChance: 30}),
			player("b", models.ScoreCard{models.CategoryChance: 50}),
			player("c", models.ScoreCard{models.CategoryYacht: 50}),
		},
	}

	standings := s.calc.Rankings(room)

	s.Require().Len(standings, 3)
	s.Equal("b", standings[0].Player.ID)
	s.Equal("c", standings[1].Player.ID)
	s.Equal("a", standings[2].Player.ID)
	s.Equal([]int{1, 1, 3}, ranks(standings))
	s.Equal([]int{50, 50, 30}, totals(standings))
}

func (s *RankingTestSuite) TestRankings_AllTiedKeepsTurnOrder() {
	room := &models.Room{
		Players: []*models.Player{
			player("x", models.ScoreCard{}),
			player("y", models.ScoreCard{}),
			player("z", models.ScoreCard{}),
		},
	}

	standings := s.calc.Rankings(room)

	s.Equal([]int{1, 1, 1}, ranks(standings))
	s.Equal("x", standings[0].Player.ID)
	s.Equal("y", standings[1].Player.ID)
	s.Equal("z", standings[2].Player.ID)
}

func (s *RankingTestSuite) TestRankings_TieInTheMiddle() {
	room := &models.Room{
		Players: []*models.Player{
			player("a", models.ScoreCard{models.CategoryChance: 10}),
			player("b", models.ScoreCard{models.CategoryChance: 20}),
			player("c", models.ScoreCard{models.CategoryChance: 20}),
			player("d", models.ScoreCard{models.CategoryChance: 25}),
		},
	}

	s.Equal([]int{1, 2, 2, 4}, ranks(s.calc.Rankings(room)))
}

func (s *RankingTestSuite) TestRankings_IncludesBonus() {
	room := &models.Room{
		Players: []*models.Player{
			player("lower", models.ScoreCard{models.CategoryYacht: 50, models.CategoryChance: 30}),
			player("upper", models.ScoreCard{
				models.CategoryAce: 3, models.CategoryDual: 6, models.CategoryTriple: 9,
				models.CategoryQuad: 12, models.CategoryPenta: 15, models.CategoryHexa: 18,
			}),
		},
	}

	standings := s.calc.Rankings(room)

	s.Equal("upper", standings[0].Player.ID)
	s.Equal(98, standings[0].TotalScore)
	s.Equal(35, standings[0].Totals.Bonus)
	s.Equal(80, standings[1].TotalScore)
}

func (s *RankingTestSuite) TestRankings_NilAndEmpty() {
	s.Nil(s.calc.Rankings(nil))
	s.Empty(s.calc.Rankings(&models.Room{}))
}

func (s *RankingTestSuite) TestTiedPlayers() {
	room := &models.Room{
		Players: []*models.Player{
			player("a", models.ScoreCard{models.CategoryChance: 20}),
			player("b", models.ScoreCard{models.CategoryChance: 20}),
			player("c", models.ScoreCard{models.CategoryChance: 5}),
		},
	}

	tied := s.calc.TiedPlayers(room, 1)
	s.Require().Len(tied, 2)
	s.Equal("a", tied[0].Player.ID)
	s.Equal("b", tied[1].Player.ID)

	s.Len(s.calc.TiedPlayers(room, 3), 1)
	s.Empty(s.calc.TiedPlayers(room, 2))
}

func (s *RankingTestSuite) TestLeaderboard() {
	room := &models.Room{
		ID:      "room-1",
		Players: []*models.Player{player("a", models.ScoreCard{})},
	}

	board := s.calc.Leaderboard(room)

	s.Equal("room-1", board.RoomID)
	s.Len(board.Standings, 1)
	s.Nil(s.calc.Leaderboard(nil))
}

func ranks(standings []*models.Standing) []int {
	out := make([]int, len(standings))
	for i, st := range standings {
		out[i] = st.Rank
	}
	return out
}

func totals(standings []*models.Standing) []int {
	out := make([]int, len(standings))
	for i, st := range standings {
		out[i] = st.TotalScore
	}
	return out
}
