package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory implementation of [Store].
//
// Sessions are copied on the way in and out so callers never share state with the map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	pendingTTL time.Duration
	interval   time.Duration
	now        func() time.Time
	onSweep    func(evicted int)

	stopOnce sync.Once
	stop     chan struct{}
}

// MemoryStoreOpts configures eviction for a [MemoryStore]. Zero values disable the matching rule.
type MemoryStoreOpts struct {
	PendingTTL    time.Duration    // Pending sessions older than this are evicted
	SweepInterval time.Duration    // How often Start runs Sweep
	Now           func() time.Time // Clock, defaults to time.Now
	OnSweep       func(int)        // Called after each scheduled sweep that evicted something
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore(opts MemoryStoreOpts) *MemoryStore {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &MemoryStore{
		sessions:   make(map[string]*Session),
		pendingTTL: opts.PendingTTL,
		interval:   opts.SweepInterval,
		now:        opts.Now,
		onSweep:    opts.OnSweep,
		stop:       make(chan struct{}),
	}
}

// Create inserts a new Pending session keyed by token.
func (m *MemoryStore) Create(token string, createdAt time.Time) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[token]; exists {
		return ErrDuplicateSession
	}
	m.sessions[token] = &Session{Token: token, CreatedAt: createdAt}
	return nil
}

// Get returns a copy of the session stored under token.
func (m *MemoryStore) Get(token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

// Update merges fields into the session stored under token.
func (m *MemoryStore) Update(token string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	fields.apply(s)
	return nil
}

// Activate merges fields into a Pending session. It fails with [ErrSessionActive] when a
// concurrent callback already completed the exchange for the same token.
func (m *MemoryStore) Activate(token string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	if s.State() != Pending {
		return ErrSessionActive
	}
	fields.apply(s)
	return nil
}

// Has reports whether a session exists for token.
func (m *MemoryStore) Has(token string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sessions[token]
	return ok
}

// Delete removes the session stored under token.
func (m *MemoryStore) Delete(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, token)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts stale Pending sessions and expired Active sessions as of now, returning the number removed.
func (m *MemoryStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for token, s := range m.sessions {
		switch s.State() {
		case Pending:
			if m.pendingTTL <= 0 || now.Sub(s.CreatedAt) < m.pendingTTL {
				continue
			}
		case Active:
			if !s.Expired(now) {
				continue
			}
		}
		delete(m.sessions, token)
		evicted++
	}
	return evicted
}

// Start runs [MemoryStore.Sweep] every sweep interval until ctx is done or Stop is called.
//
// It returns immediately when the interval is not positive.
func (m *MemoryStore) Start(ctx context.Context) {
	if m.interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				if n := m.Sweep(m.now()); n > 0 && m.onSweep != nil {
					m.onSweep(n)
				}
			}
		}
	}()
}

// Stop ends the sweep goroutine started by Start. It is safe to call more than once.
func (m *MemoryStore) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}
