package player

import (
	"sync"
	"time"

	"github.com/Strum355/log"
)

// Event is published after every state change of a session.
type Event struct {
	UserID   int64     `json:"userId"`
	Action   string    `json:"action"`
	Snapshot Snapshot  `json:"snapshot"`
	At       time.Time `json:"at"`
}

// Bus fans events out to subscribers. Slow subscribers miss events
// rather than block the session.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]subscriber
	nextID int
}

type subscriber struct {
	userID int64
	ch     chan Event
}

func NewBus() *Bus {
	return &Bus{subs: map[int]subscriber{}}
}

// Subscribe returns a channel of events for userID (0 for every user)
// and a cancel func that closes it.
func (b *Bus) Subscribe(userID int64, buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, buffer)
	b.subs[id] = subscriber{userID: userID, ch: ch}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Bus) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.userID != 0 && s.userID != e.UserID {
			continue
		}
		select {
		case s.ch <- e:
		default:
			log.Warn("player: subscriber too slow, dropping event " + e.Action)
		}
	}
}
