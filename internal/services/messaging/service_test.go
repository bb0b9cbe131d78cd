package messaging

import (
	"context"
	"testing"

	"github.com/KirkDiggler/yachtie/internal/dice/mocks"
	"github.com/KirkDiggler/yachtie/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *mocks.MockRoller
	service    Service
	ctx        context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
	s.ctx = context.Background()

	// always pick the first variant
	s.mockRoller.EXPECT().Roll(gomock.Any()).Return(1).AnyTimes()

	svc, err := NewService(&ServiceConfig{Roller: s.mockRoller})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestNilInputs() {
	_, err := s.service.GetJoinMessage(s.ctx, nil)
	s.Error(err)
	_, err = s.service.GetScoreMessage(s.ctx, nil)
	s.Error(err)
	_, err = s.service.GetGameOverMessage(s.ctx, nil)
	s.Error(err)
}

func (s *ServiceTestSuite) TestNewServiceWithoutRoller() {
	svc, err := NewService(nil)
	s.Require().NoError(err)

	out, err := svc.GetJoinMessage(s.ctx, &GetJoinMessageInput{PlayerName: "alice", PlayerCount: 2, MaxPlayers: 4})
	s.Require().NoError(err)
	s.Contains(out.Message, "alice")
}

func (s *ServiceTestSuite) TestGetJoinMessage() {
	first, err := s.service.GetJoinMessage(s.ctx, &GetJoinMessageInput{PlayerName: "alice", PlayerCount: 1, MaxPlayers: 4})
	s.Require().NoError(err)
	s.Equal(ToneEncouraging, first.Tone)
	s.Equal("alice is first at the table. Someone keep them company!", first.Message)

	middle, err := s.service.GetJoinMessage(s.ctx, &GetJoinMessageInput{PlayerName: "bob", PlayerCount: 2, MaxPlayers: 4})
	s.Require().NoError(err)
	s.Equal(ToneFunny, middle.Tone)
	s.Equal("A new challenger appears: bob!", middle.Message)

	last, err := s.service.GetJoinMessage(s.ctx, &GetJoinMessageInput{PlayerName: "carol", PlayerCount: 4, MaxPlayers: 4})
	s.Require().NoError(err)
	s.Equal(ToneCelebration, last.Tone)
	s.Contains(last.Message, "full table")
}

func (s *ServiceTestSuite) TestGetScoreMessage() {
	cases := []struct {
		name     string
		input    *GetScoreMessageInput
		tone     MessageTone
		contains string
	}{
		{"scratch", &GetScoreMessageInput{PlayerName: "a", Category: models.CategoryYacht, Score: 0}, ToneSarcastic, "scratches"},
		{"yacht", &GetScoreMessageInput{PlayerName: "a", Category: models.CategoryYacht, Score: 50}, ToneCelebration, "YACHT"},
		{"large straight", &GetScoreMessageInput{PlayerName: "a", Category: models.CategoryLargeStraight, Score: 30}, ToneCelebration, "Clean hand"},
		{"strong upper", &GetScoreMessageInput{PlayerName: "a", Category: models.CategoryHexa, Score: 24}, ToneEncouraging, "upper section"},
		{"weak upper", &GetScoreMessageInput{PlayerName: "a", Category: models.CategoryHexa, Score: 12}, ToneNeutral, "Noted"},
		{"chance", &GetScoreMessageInput{PlayerName: "a", Category: models.CategoryChance, Score: 22}, ToneNeutral, "Noted"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			out, err := s.service.GetScoreMessage(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.tone, out.Tone)
			s.Contains(out.Message, tc.contains)
		})
	}
}

func (s *ServiceTestSuite) TestGetScoreMessage_Bonus() {
	out, err := s.service.GetScoreMessage(s.ctx, &GetScoreMessageInput{
		PlayerName:  "a",
		Category:    models.CategoryAce,
		Score:       2,
		BonusEarned: true,
		BonusScore:  35,
	})
	s.Require().NoError(err)
	s.Equal(ToneCelebration, out.Tone)
	s.Equal("Noted, a. Upper bonus unlocked: +35!", out.Message)
}

func (s *ServiceTestSuite) TestGetGameOverMessage() {
	none, err := s.service.GetGameOverMessage(s.ctx, &GetGameOverMessageInput{})
	s.Require().NoError(err)
	s.Equal("Game over!", none.Message)

	solo, err := s.service.GetGameOverMessage(s.ctx, &GetGameOverMessageInput{Winners: []string{"alice"}, Score: 210})
	s.Require().NoError(err)
	s.Equal("🏆 alice wins with 210 points!", solo.Message)

	tie, err := s.service.GetGameOverMessage(s.ctx, &GetGameOverMessageInput{Winners: []string{"a", "b", "c"}, Score: 98})
	s.Require().NoError(err)
	s.Equal("🤝 It's a tie! a, b and c share the win with 98.", tie.Message)
}
