// Package feed shares one room store subscription between every local
// observer of the same room.
//
// Acquire hands out a Handle per observer. The first Acquire for a room opens
// the subscription; the last Release closes it. Handles read the latest
// snapshot without blocking, wait for the first load, and register listeners
// for later deliveries.
package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/yachtie/internal/models"
	roomRepo "github.com/KirkDiggler/yachtie/internal/repositories/room"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/rs/zerolog"
)

// FeedError is a custom error type for feed errors
type FeedError string

// Error implements the error interface
func (e FeedError) Error() string {
	return string(e)
}

const (
	ErrFeedClosed   FeedError = "feed is closed"
	ErrHandleClosed FeedError = "handle has been released"
	ErrNilConfig    FeedError = "config cannot be nil"
	ErrNilRoomRepo  FeedError = "room repository cannot be nil"
)

const defaultSubscribeTimeout = 5 * time.Second

// Listener receives every delivery after it was registered. Exactly one of
// room and err is set.
type Listener func(room *models.Room, err error)

// Config holds configuration for the feed
type Config struct {
	RoomRepo roomRepo.Repository

	// SubscribeTimeout bounds the store handshake, defaults to 5s
	SubscribeTimeout time.Duration

	Logger zerolog.Logger
}

// Feed multiplexes room subscriptions
type Feed struct {
	repo             roomRepo.Repository
	subscribeTimeout time.Duration
	log              zerolog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

type entry struct {
	roomID string

	// refs is guarded by Feed.mu
	refs int

	ready     chan struct{}
	readyOnce sync.Once

	mu           sync.RWMutex
	latest       *models.Room
	err          error
	listeners    map[uint64]Listener
	nextListener uint64
	unsubscribe  func()
	closed       bool
}

// New creates a feed
func New(cfg *Config) (*Feed, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}

	timeout := cfg.SubscribeTimeout
	if timeout <= 0 {
		timeout = defaultSubscribeTimeout
	}

	return &Feed{
		repo:             cfg.RoomRepo,
		subscribeTimeout: timeout,
		log:              cfg.Logger.With().Str("component", "feed").Logger(),
		entries:          make(map[string]*entry),
	}, nil
}

// Acquire returns a handle on the room's shared subscription, opening it if
// this is the first observer. Subscription failures are reported through
// the handle.
func (f *Feed) Acquire(ctx context.Context, roomID string) (*Handle, error) {
	if roomID == "" {
		return nil, roomService.ErrInvalidRoomID
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFeedClosed
	}

	if e, ok := f.entries[roomID]; ok {
		e.refs++
		refs := e.refs
		f.mu.Unlock()

		f.log.Debug().Str("room_id", roomID).Int("refs", refs).Msg("feed reused")
		return &Handle{feed: f, entry: e}, nil
	}

	e := &entry{
		roomID:    roomID,
		refs:      1,
		ready:     make(chan struct{}),
		listeners: make(map[uint64]Listener),
	}
	f.entries[roomID] = e
	f.mu.Unlock()

	f.subscribe(ctx, e)

	return &Handle{feed: f, entry: e}, nil
}

func (f *Feed) subscribe(ctx context.Context, e *entry) {
	// the subscription outlives the caller that happened to open it
	subCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.subscribeTimeout)
	defer cancel()

	out, err := f.repo.Subscribe(subCtx, &roomRepo.SubscribeInput{
		RoomID:   e.roomID,
		OnChange: e.onChange,
		OnError:  func(err error) { e.onError(f.translate(e.roomID, err)) },
	})
	if err != nil {
		f.log.Warn().Err(err).Str("room_id", e.roomID).Msg("failed to subscribe")

		// drop the entry so the next Acquire tries again
		f.mu.Lock()
		if f.entries[e.roomID] == e {
			delete(f.entries, e.roomID)
		}
		f.mu.Unlock()

		e.onError(roomService.StoreError(err))
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		out.Unsubscribe()
		return
	}
	e.unsubscribe = out.Unsubscribe
	e.mu.Unlock()

	f.log.Debug().Str("room_id", e.roomID).Msg("feed subscribed")
}

func (f *Feed) translate(roomID string, err error) error {
	mapped := roomService.StoreError(err)
	if !errors.Is(mapped, roomService.ErrRoomNotFound) {
		f.log.Warn().Err(err).Str("room_id", roomID).Msg("room delivery failed")
	}
	return mapped
}

func (f *Feed) release(e *entry) {
	f.mu.Lock()
	e.refs--
	refs := e.refs
	if refs > 0 {
		f.mu.Unlock()
		f.log.Debug().Str("room_id", e.roomID).Int("refs", refs).Msg("feed released")
		return
	}
	if f.entries[e.roomID] == e {
		delete(f.entries, e.roomID)
	}
	f.mu.Unlock()

	e.teardown()
	f.log.Debug().Str("room_id", e.roomID).Msg("feed torn down")
}

// Stats returns the reference count of every live room subscription
func (f *Feed) Stats() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := make(map[string]int, len(f.entries))
	for id, e := range f.entries {
		stats[id] = e.refs
	}
	return stats
}

// Close tears down every subscription. Outstanding handles keep their last
// snapshot; further Acquire calls fail.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	entries := f.entries
	f.entries = make(map[string]*entry)
	f.mu.Unlock()

	for _, e := range entries {
		e.teardown()
	}
	f.log.Info().Int("rooms", len(entries)).Msg("feed closed")
}

func (e *entry) resolve() {
	e.readyOnce.Do(func() { close(e.ready) })
}

func (e *entry) onChange(room *models.Room) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.latest = room
	e.err = nil
	listeners := e.snapshotListeners()
	e.mu.Unlock()

	e.resolve()
	for _, l := range listeners {
		l(room, nil)
	}
}

func (e *entry) onError(err error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.err = err
	if errors.Is(err, roomService.ErrRoomNotFound) {
		e.latest = nil
	}
	listeners := e.snapshotListeners()
	e.mu.Unlock()

	e.resolve()
	for _, l := range listeners {
		l(nil, err)
	}
}

// snapshotListeners must be called with e.mu held
func (e *entry) snapshotListeners() []Listener {
	listeners := make([]Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}

func (e *entry) teardown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.latest == nil && e.err == nil {
		e.err = ErrHandleClosed
	}
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.listeners = nil
	e.mu.Unlock()

	e.resolve()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Handle is one observer's view of a shared room subscription
type Handle struct {
	feed  *Feed
	entry *entry
	once  sync.Once
}

// RoomID returns the observed room
func (h *Handle) RoomID() string {
	return h.entry.roomID
}

// Wait blocks until the first delivery and returns its outcome, or the
// latest one if deliveries already happened.
func (h *Handle) Wait(ctx context.Context) (*models.Room, error) {
	select {
	case <-h.entry.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	h.entry.mu.RLock()
	defer h.entry.mu.RUnlock()
	if h.entry.err != nil {
		return nil, h.entry.err
	}
	return h.entry.latest, nil
}

// Current returns the latest snapshot without blocking, or nil before the first load
func (h *Handle) Current() *models.Room {
	h.entry.mu.RLock()
	defer h.entry.mu.RUnlock()
	return h.entry.latest
}

// Err returns the cached delivery error, cleared by the next successful delivery
func (h *Handle) Err() error {
	h.entry.mu.RLock()
	defer h.entry.mu.RUnlock()
	return h.entry.err
}

// OnChange registers a listener for later deliveries. The returned cancel is idempotent.
func (h *Handle) OnChange(l Listener) (cancel func()) {
	e := h.entry

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return func() {}
	}
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = l
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.listeners, id)
			e.mu.Unlock()
		})
	}
}

// Release drops this handle's reference. The last release closes the
// subscription before returning. Calling Release again does nothing.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.feed.release(h.entry)
	})
}
