package core

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/huddlechat/huddle-server/internal/code"
)

// DefaultRetention is how many messages a room keeps before the oldest
// are evicted.
const DefaultRetention = 100

// Publisher receives every stored message, e.g. to fan it out to
// streaming subscribers. Publish must never block.
type Publisher interface {
	Publish(msg Message)
}

// MessageLog holds the bounded, ordered message history of every room.
// Synchronization is partitioned per room: appends to different rooms do
// not contend, and reads only wait for the duration of a single append.
type MessageLog struct {
	reg       *Registry
	retention int
	pub       Publisher

	mu   sync.RWMutex
	logs map[string]*ring
}

// NewMessageLog constructs a log bound to the registry that answers room
// existence. retention <= 0 falls back to DefaultRetention.
func NewMessageLog(reg *Registry, retention int) *MessageLog {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MessageLog{
		reg:       reg,
		retention: retention,
		logs:      make(map[string]*ring),
	}
}

// SetPublisher attaches a fan-out sink for stored messages. Must be
// called before the log is shared between goroutines.
func (l *MessageLog) SetPublisher(pub Publisher) {
	l.pub = pub
}

// Retention returns the per-room message cap.
func (l *MessageLog) Retention() int {
	return l.retention
}

// Append validates and stores a message at the end of the room's history,
// evicting the oldest entry once the room is at capacity. The room must
// exist in the registry; the room's log itself is created lazily on first
// append. The stored message, including its assigned id and timestamp, is
// returned so callers can echo it back without a second read.
func (l *MessageLog) Append(roomCode, author, body string) (Message, error) {
	author, err := validateDisplayName("author", author)
	if err != nil {
		return Message{}, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, invalidInput("message body is required")
	}

	canonical := code.Canonicalize(roomCode)
	if !l.reg.Exists(canonical) {
		return Message{}, &CoreError{Code: ErrCodeRoomNotFound, Message: "room not found"}
	}

	msg := Message{
		ID:       uuid.NewString(),
		RoomCode: canonical,
		Author:   author,
		Body:     body,
		SentAt:   time.Now(),
	}

	rg := l.roomRing(canonical)
	rg.mu.Lock()
	rg.push(msg)
	rg.mu.Unlock()

	l.reg.Touch(canonical)
	if l.pub != nil {
		l.pub.Publish(msg)
	}
	return msg, nil
}

// List returns the room's current history, oldest first. Unknown rooms
// and rooms with no appends yet both yield an empty slice, not an error.
func (l *MessageLog) List(roomCode string) []Message {
	canonical := code.Canonicalize(roomCode)

	l.mu.RLock()
	rg, ok := l.logs[canonical]
	l.mu.RUnlock()
	if !ok {
		return []Message{}
	}

	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.snapshot()
}

// Drop discards a room's entire history. Called when the registry evicts
// the room.
func (l *MessageLog) Drop(canonical string) {
	l.mu.Lock()
	delete(l.logs, canonical)
	l.mu.Unlock()
}

// roomRing returns the room's ring buffer, creating it on first use.
func (l *MessageLog) roomRing(canonical string) *ring {
	l.mu.RLock()
	rg, ok := l.logs[canonical]
	l.mu.RUnlock()
	if ok {
		return rg
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if rg, ok = l.logs[canonical]; ok {
		return rg
	}
	rg = newRing(l.retention)
	l.logs[canonical] = rg
	return rg
}

// ring is a fixed-capacity FIFO buffer. Eviction is O(1): pushing into a
// full ring overwrites the oldest slot. All access goes through rg.mu.
type ring struct {
	mu    sync.RWMutex
	buf   []Message
	start int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]Message, capacity)}
}

func (r *ring) push(msg Message) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = msg
		r.count++
		return
	}
	r.buf[r.start] = msg
	r.start = (r.start + 1) % len(r.buf)
}

func (r *ring) snapshot() []Message {
	out := make([]Message, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
