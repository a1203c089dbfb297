package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// ErrNotFound is returned by DoExisting for a session without a machine.
var ErrNotFound = errors.New("session not found")

// Func is the work performed while a session is held.
type Func func(ctx context.Context, m *machine.Deterministic) error

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager owns the machines of all live sessions.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu       sync.Mutex // guards locks and machines
	locks    map[string]*lockEntry
	machines map[string]*machine.Deterministic

	locker      ports.DistributedLocker
	lockTTL     time.Duration
	machineOpts []machine.Option
	logger      *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithMachineOptions sets the options every new session machine is created with.
func WithMachineOptions(opts ...machine.Option) Option {
	return func(m *Manager) {
		m.machineOpts = append(m.machineOpts, opts...)
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates an empty session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		locks:    make(map[string]*lockEntry),
		machines: make(map[string]*machine.Deterministic),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do runs fn with exclusive access to the session's machine, creating the machine on
// first use.
func (m *Manager) Do(ctx context.Context, sessionID string, fn Func) error {
	return m.withLock(ctx, sessionID, func(ctx context.Context) error {
		return fn(ctx, m.machine(sessionID))
	})
}

// DoExisting is Do for a session that must already exist. The existence check runs
// under the session lock, so a concurrent Drop yields ErrNotFound instead of a new machine.
func (m *Manager) DoExisting(ctx context.Context, sessionID string, fn Func) error {
	return m.withLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		mc, ok := m.machines[sessionID]
		m.mu.Unlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
		}
		return fn(ctx, mc)
	})
}

// Drop discards the session's machine. Dropping an unknown session is a no-op.
func (m *Manager) Drop(ctx context.Context, sessionID string) error {
	return m.withLock(ctx, sessionID, func(context.Context) error {
		m.mu.Lock()
		delete(m.machines, sessionID)
		m.mu.Unlock()
		m.logger.Debug("session dropped", "session_id", sessionID)
		return nil
	})
}

// Has reports whether the session has a machine.
func (m *Manager) Has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.machines[sessionID]
	return ok
}

// List returns the ids of all live sessions in lexical order.
func (m *Manager) List() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.machines))
	for id := range m.machines {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.machines)
}

func (m *Manager) machine(sessionID string) *machine.Deterministic {
	m.mu.Lock()
	defer m.mu.Unlock()

	mc, ok := m.machines[sessionID]
	if !ok {
		mc = machine.New(m.machineOpts...)
		m.machines[sessionID] = mc
		m.logger.Debug("session created", "session_id", sessionID)
	}
	return mc
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

func (m *Manager) withLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
