package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/yachtie/internal/models"
	roomRepo "github.com/KirkDiggler/yachtie/internal/repositories/room"
	roomMocks "github.com/KirkDiggler/yachtie/internal/repositories/room/mocks"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FeedTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockRoomRepo *roomMocks.MockRepository
	feed         *Feed
	ctx          context.Context

	testRoomID string

	// captured from the last Subscribe call
	subscribeInput *roomRepo.SubscribeInput
	unsubscribes   atomic.Int32
}

func (s *FeedTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoomRepo = roomMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()
	s.testRoomID = "test-room-id"
	s.subscribeInput = nil
	s.unsubscribes.Store(0)

	feed, err := New(&Config{RoomRepo: s.mockRoomRepo})
	s.Require().NoError(err)
	s.feed = feed
}

func (s *FeedTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestFeedTestSuite(t *testing.T) {
	suite.Run(t, new(FeedTestSuite))
}

func (s *FeedTestSuite) expectSubscribe(times int) {
	s.mockRoomRepo.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *roomRepo.SubscribeInput) (*roomRepo.SubscribeOutput, error) {
			s.Equal(s.testRoomID, input.RoomID)
			s.subscribeInput = input
			return &roomRepo.SubscribeOutput{
				Unsubscribe: func() { s.unsubscribes.Add(1) },
			}, nil
		}).
		Times(times)
}

func (s *FeedTestSuite) testRoom(version int64) *models.Room {
	return &models.Room{ID: s.testRoomID, Name: "room", Version: version, Status: models.RoomStatusWaiting}
}

func (s *FeedTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilRoomRepo)
}

func (s *FeedTestSuite) TestAcquire_EmptyRoomID() {
	_, err := s.feed.Acquire(s.ctx, "")
	s.ErrorIs(err, roomService.ErrInvalidRoomID)
}

func (s *FeedTestSuite) TestTwoAcquiresShareOneSubscriptionAndOneTeardown() {
	s.expectSubscribe(1)

	first, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	second, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)

	s.Equal(map[string]int{s.testRoomID: 2}, s.feed.Stats())
	s.Nil(first.Current())

	var wg sync.WaitGroup
	results := make([]*models.Room, 2)
	for i, h := range []*Handle{first, second} {
		wg.Add(1)
		go func(i int, h *Handle) {
			defer wg.Done()
			room, err := h.Wait(s.ctx)
			s.NoError(err)
			results[i] = room
		}(i, h)
	}

	// one delivery resolves both waiters
	s.subscribeInput.OnChange(s.testRoom(1))
	wg.Wait()

	s.Equal(int64(1), results[0].Version)
	s.Same(results[0], results[1])

	first.Release()
	s.Equal(int32(0), s.unsubscribes.Load())
	s.Equal(map[string]int{s.testRoomID: 1}, s.feed.Stats())

	// releasing the same handle twice must not drop the other reference
	first.Release()
	s.Equal(int32(0), s.unsubscribes.Load())

	second.Release()
	s.Equal(int32(1), s.unsubscribes.Load())
	s.Empty(s.feed.Stats())

	second.Release()
	s.Equal(int32(1), s.unsubscribes.Load())
}

func (s *FeedTestSuite) TestConcurrentAcquireRelease() {
	s.expectSubscribe(1)

	// hold one reference so the entry survives the churn below
	anchor, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := s.feed.Acquire(s.ctx, s.testRoomID)
			s.NoError(err)
			h.Release()
		}()
	}
	wg.Wait()

	s.Equal(map[string]int{s.testRoomID: 1}, s.feed.Stats())
	anchor.Release()
	s.Equal(int32(1), s.unsubscribes.Load())
}

func (s *FeedTestSuite) TestReacquireAfterTeardownSubscribesAgain() {
	s.expectSubscribe(2)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	h.Release()

	h, err = s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	h.Release()

	s.Equal(int32(2), s.unsubscribes.Load())
}

func (s *FeedTestSuite) TestListenersReceiveLaterDeliveries() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	defer h.Release()

	var got []int64
	cancel := h.OnChange(func(room *models.Room, err error) {
		s.NoError(err)
		got = append(got, room.Version)
	})

	s.subscribeInput.OnChange(s.testRoom(1))
	s.subscribeInput.OnChange(s.testRoom(2))

	cancel()
	cancel()
	s.subscribeInput.OnChange(s.testRoom(3))

	s.Equal([]int64{1, 2}, got)
	s.Equal(int64(3), h.Current().Version)
}

func (s *FeedTestSuite) TestErrorIsCachedUntilNextSuccess() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	defer h.Release()

	var errs []error
	h.OnChange(func(room *models.Room, err error) {
		if err != nil {
			errs = append(errs, err)
		}
	})

	s.subscribeInput.OnChange(s.testRoom(1))
	s.subscribeInput.OnError(errors.New("connection reset"))

	s.ErrorIs(h.Err(), roomService.ErrUnavailable)
	s.Equal(int64(1), h.Current().Version, "transport errors keep the last snapshot")
	_, err = h.Wait(s.ctx)
	s.ErrorIs(err, roomService.ErrUnavailable)
	s.Len(errs, 1)

	// a later observer sees the cached error as well
	late, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	s.ErrorIs(late.Err(), roomService.ErrUnavailable)
	late.Release()

	s.subscribeInput.OnChange(s.testRoom(2))
	s.NoError(h.Err())
	room, err := h.Wait(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), room.Version)
}

func (s *FeedTestSuite) TestDeletedRoomClearsSnapshot() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	defer h.Release()

	s.subscribeInput.OnChange(s.testRoom(1))
	s.subscribeInput.OnError(roomRepo.ErrRoomNotFound)

	s.Nil(h.Current())
	s.ErrorIs(h.Err(), roomService.ErrRoomNotFound)
	s.Equal(roomService.KindNotFound, roomService.KindOf(h.Err()))
}

func (s *FeedTestSuite) TestSubscribeFailureIsReportedAndRetried() {
	s.mockRoomRepo.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("dial tcp: refused"))

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)

	_, err = h.Wait(s.ctx)
	s.ErrorIs(err, roomService.ErrUnavailable)
	s.Empty(s.feed.Stats())
	h.Release()

	s.expectSubscribe(1)
	h, err = s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	s.subscribeInput.OnChange(s.testRoom(1))

	room, err := h.Wait(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), room.Version)
	h.Release()
}

func (s *FeedTestSuite) TestWaitHonoursContext() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	defer h.Release()

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()

	_, err = h.Wait(ctx)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *FeedTestSuite) TestReleaseFromInsideListener() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)

	calls := 0
	h.OnChange(func(room *models.Room, err error) {
		calls++
		h.Release()
	})

	s.subscribeInput.OnChange(s.testRoom(1))
	s.subscribeInput.OnChange(s.testRoom(2))

	s.Equal(1, calls)
	s.Equal(int32(1), s.unsubscribes.Load())
	s.Empty(s.feed.Stats())
}

func (s *FeedTestSuite) TestReleaseBeforeFirstDeliveryUnblocksWaiters() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	h.Release()

	_, err = h.Wait(s.ctx)
	s.ErrorIs(err, ErrHandleClosed)
}

func (s *FeedTestSuite) TestClose() {
	s.expectSubscribe(1)

	h, err := s.feed.Acquire(s.ctx, s.testRoomID)
	s.Require().NoError(err)
	s.subscribeInput.OnChange(s.testRoom(1))

	s.feed.Close()
	s.Equal(int32(1), s.unsubscribes.Load())
	s.Empty(s.feed.Stats())
	s.Equal(int64(1), h.Current().Version)

	_, err = s.feed.Acquire(s.ctx, s.testRoomID)
	s.ErrorIs(err, ErrFeedClosed)

	h.Release()
	s.feed.Close()
	s.Equal(int32(1), s.unsubscribes.Load())
}
