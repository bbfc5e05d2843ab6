package core

import (
	"context"
	"sync"
	"time"

	"github.com/huddlechat/huddle-server/internal/code"
)

// generateAttempts bounds how many candidate codes a single Create call
// tries before giving up with a collision error.
const generateAttempts = 5

// Registry owns the mapping from canonical room code to Room metadata.
// It is the sole writer of room existence and is safe for concurrent use.
type Registry struct {
	gen *code.Generator
	ttl time.Duration

	mu         sync.RWMutex
	rooms      map[string]Room
	lastActive map[string]time.Time

	// onEvict is invoked (outside the registry lock) for every room the
	// TTL sweeper removes, so dependent state can be dropped with it.
	onEvict func(code string)
}

// NewRegistry constructs an empty registry. ttl <= 0 disables room
// eviction and rooms live for the process lifetime.
func NewRegistry(gen *code.Generator, ttl time.Duration) *Registry {
	if gen == nil {
		gen = code.NewGenerator(code.DefaultLength)
	}
	return &Registry{
		gen:        gen,
		ttl:        ttl,
		rooms:      make(map[string]Room),
		lastActive: make(map[string]time.Time),
	}
}

// SetEvictFunc registers a callback for TTL-evicted rooms. Must be called
// before Run.
func (r *Registry) SetEvictFunc(fn func(code string)) {
	r.onEvict = fn
}

// Create validates the inputs, settles on a canonical code and inserts the
// room as one atomic step. requestedCode may be empty, in which case the
// registry generates one, retrying on the off chance the random code is
// already taken. A non-empty requestedCode that collides fails immediately
// with ErrCodeCollision and leaves the existing room untouched.
func (r *Registry) Create(name, creatorName, requestedCode string) (Room, error) {
	name, err := validateRoomName(name)
	if err != nil {
		return Room{}, err
	}
	creatorName, err = validateDisplayName("creator name", creatorName)
	if err != nil {
		return Room{}, err
	}

	if requestedCode != "" {
		canonical := code.Canonicalize(requestedCode)
		if err := code.Validate(canonical); err != nil {
			return Room{}, invalidInput(err.Error())
		}
		return r.insert(canonical, name, creatorName)
	}

	for i := 0; i < generateAttempts; i++ {
		candidate, err := r.gen.Generate()
		if err != nil {
			return Room{}, err
		}
		room, insertErr := r.insert(candidate, name, creatorName)
		if insertErr == nil {
			return room, nil
		}
	}
	return Room{}, &CoreError{Code: ErrCodeCodeCollision, Message: "could not allocate a unique room code"}
}

// insert performs the check-and-set under one lock so two concurrent
// creates with the same code can never both succeed.
func (r *Registry) insert(canonical, name, creatorName string) (Room, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[canonical]; exists {
		return Room{}, &CoreError{Code: ErrCodeCodeCollision, Message: "room code already exists"}
	}

	room := Room{
		Code:        canonical,
		Name:        name,
		CreatorName: creatorName,
		CreatedAt:   now,
	}
	r.rooms[canonical] = room
	r.lastActive[canonical] = now
	return room, nil
}

// Get looks up a room by code, case-insensitively. Pure read.
func (r *Registry) Get(rawCode string) (Room, error) {
	canonical := code.Canonicalize(rawCode)

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[canonical]
	if !ok {
		return Room{}, &CoreError{Code: ErrCodeRoomNotFound, Message: "room not found"}
	}
	return room, nil
}

// Exists reports whether the canonical code maps to a live room.
func (r *Registry) Exists(canonical string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[canonical]
	return ok
}

// Touch marks a room as recently active, deferring TTL eviction. No-op for
// unknown codes or when eviction is disabled.
func (r *Registry) Touch(canonical string) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	if _, ok := r.rooms[canonical]; ok {
		r.lastActive[canonical] = time.Now()
	}
	r.mu.Unlock()
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Run sweeps idle rooms until the context is cancelled. Returns
// immediately when eviction is disabled.
func (r *Registry) Run(ctx context.Context) {
	if r.ttl <= 0 {
		return
	}

	interval := r.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(time.Now())
		case <-ctx.Done():
			return
		}
	}
}

// sweep removes every room idle for longer than the TTL and reports the
// evicted codes to the registered callback.
func (r *Registry) sweep(now time.Time) []string {
	if r.ttl <= 0 {
		return nil
	}

	r.mu.Lock()
	var evicted []string
	for c, last := range r.lastActive {
		if now.Sub(last) > r.ttl {
			delete(r.rooms, c)
			delete(r.lastActive, c)
			evicted = append(evicted, c)
		}
	}
	r.mu.Unlock()

	if r.onEvict != nil {
		for _, c := range evicted {
			r.onEvict(c)
		}
	}
	return evicted
}
