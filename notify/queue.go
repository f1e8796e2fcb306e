package notify

import (
	"sync"
	"time"

	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

// Tunables, overridden from config at startup.
var (
	DefaultMaxVisible = 5
	SuccessDurationMs = 5000
	ErrorDurationMs   = 8000
)

type timerHandle interface {
	Stop() bool
}

type timerFunc func(d time.Duration, f func()) timerHandle

func realAfterFunc(d time.Duration, f func()) timerHandle {
	return time.AfterFunc(d, f)
}

// Queue holds the visible notifications, newest first, capped at max.
// Every timed notification owns one expiry timer, cancellable by ID.
type Queue struct {
	mu       sync.Mutex
	max      int
	items    []types.Notification
	timers   map[string]timerHandle
	newTimer timerFunc
	clock    tool.Clock
	changes  chan struct{}
}

// New creates a queue showing at most max notifications at once.
// max <= 0 falls back to DefaultMaxVisible.
func New(max int) *Queue {
	return newQueue(max, realAfterFunc, tool.RealClock{})
}

func newQueue(max int, nt timerFunc, clock tool.Clock) *Queue {
	if max <= 0 {
		max = DefaultMaxVisible
	}
	return &Queue{
		max:      max,
		timers:   make(map[string]timerHandle),
		newTimer: nt,
		clock:    clock,
		changes:  make(chan struct{}, 1),
	}
}

// Push inserts n at the head and returns its ID. When the queue is full
// the oldest notifications fall off the tail. A positive DurationMs arms
// an expiry timer, 0 keeps the notification until dismissed.
func (q *Queue) Push(n types.Notification) string {
	q.mu.Lock()
	if n.ID == "" {
		n.ID = tool.GenerateRandomUUID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = q.clock.Now()
	}
	q.items = append([]types.Notification{n}, q.items...)
	for len(q.items) > q.max {
		evicted := q.items[len(q.items)-1]
		q.items = q.items[:len(q.items)-1]
		q.stopTimer(evicted.ID)
	}
	if n.DurationMs > 0 {
		id := n.ID
		q.timers[id] = q.newTimer(time.Duration(n.DurationMs)*time.Millisecond, func() {
			q.Dismiss(id)
		})
	}
	q.mu.Unlock()
	q.signal()
	return n.ID
}

// Dismiss removes the notification with the given ID and cancels its
// timer. Unknown IDs are a no-op, the timer may already have fired.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	idx := -1
	for i := range q.items {
		if q.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items[:idx], q.items[idx+1:]...)
	q.stopTimer(id)
	q.mu.Unlock()
	q.signal()
}

// Clear drops every notification and stops all timers.
func (q *Queue) Clear() {
	q.mu.Lock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
	q.mu.Unlock()
	q.signal()
}

// stopTimer must be called with q.mu held.
func (q *Queue) stopTimer(id string) {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
}

// Snapshot returns the visible notifications, newest first.
func (q *Queue) Snapshot() []types.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]types.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Get returns the notification with the given ID.
func (q *Queue) Get(id string) (types.Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID == id {
			return q.items[i], true
		}
	}
	return types.Notification{}, false
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Changes delivers a coalesced signal after every mutation.
func (q *Queue) Changes() <-chan struct{} {
	return q.changes
}

func (q *Queue) signal() {
	select {
	case q.changes <- struct{}{}:
	default:
	}
}
