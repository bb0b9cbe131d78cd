package discord

import (
	"sync"

	"github.com/KirkDiggler/yachtie/internal/services/feed"
)

// table binds a channel to the room it plays and the board message that
// mirrors it
type table struct {
	channelID string
	roomID    string
	messageID string
	handle    *feed.Handle

	mu       sync.Mutex
	rendered int64
	stop     func()
	once     sync.Once
}

// claim reports whether version is newer than what the board shows
func (t *table) claim(version int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if version < t.rendered {
		return false
	}
	t.rendered = version
	return true
}

func (t *table) close() {
	t.once.Do(func() {
		t.mu.Lock()
		stop := t.stop
		t.mu.Unlock()
		if stop != nil {
			stop()
		}
		t.handle.Release()
	})
}

// tables is the in-memory channel to room map
type tables struct {
	mu        sync.Mutex
	byChannel map[string]*table
}

func newTables() *tables {
	return &tables{byChannel: make(map[string]*table)}
}

func (ts *tables) get(channelID string) *table {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.byChannel[channelID]
}

// put binds t and returns the table it replaced, if any
func (ts *tables) put(t *table) *table {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	old := ts.byChannel[t.channelID]
	ts.byChannel[t.channelID] = t
	return old
}

// remove unbinds t unless its channel has already moved on to another table
func (ts *tables) remove(t *table) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.byChannel[t.channelID] != t {
		return false
	}
	delete(ts.byChannel, t.channelID)
	return true
}

func (ts *tables) drain() []*table {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	all := make([]*table, 0, len(ts.byChannel))
	for id, t := range ts.byChannel {
		all = append(all, t)
		delete(ts.byChannel, id)
	}
	return all
}
