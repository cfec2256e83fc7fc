// Package history keeps the per-session conversation memory used to build
// prompts. It is separate from the durable conversation log.
package history

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// Store is the session history contract used by the conversation service.
type Store interface {
	// GetOrCreate returns a copy of the session's turns, registering an empty
	// session when none exists.
	GetOrCreate(sessionID string) []domain.Turn
	// Append adds a turn at the end of the session, creating it if absent.
	Append(sessionID string, turn domain.Turn)
	// Clear removes the session. Unknown sessions are ignored.
	Clear(sessionID string)
	// Snapshot returns the contents of the session's turns in order.
	Snapshot(sessionID string) []string
	// Lock serializes read-complete-append sequences on one session.
	Lock(sessionID string) (unlock func())
}

// Options bound the memory kept per session. Zero values mean unbounded.
type Options struct {
	// TTL evicts sessions idle for longer than this duration.
	TTL time.Duration
	// MaxTurns keeps only the most recent turns of each session.
	MaxTurns int
}

type session struct {
	mu    sync.Mutex
	turns []domain.Turn
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	sessions *cache.Cache
	// pinned holds sessions whose Lock is held. They cannot expire.
	pinned   map[string]*session
	maxTurns int
	locks    *keyedMutex
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a memory store with the given bounds.
func NewMemoryStore(opts Options) *MemoryStore {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if opts.TTL > 0 {
		expiration = opts.TTL
		cleanup = opts.TTL / 2
		if cleanup < time.Second {
			cleanup = time.Second
		}
	}

	maxTurns := opts.MaxTurns
	if maxTurns < 0 {
		maxTurns = 0
	}

	return &MemoryStore{
		sessions: cache.New(expiration, cleanup),
		pinned:   make(map[string]*session),
		maxTurns: maxTurns,
		locks:    newKeyedMutex(),
	}
}

// session returns the entry for sessionID, creating it when create is set.
// Every access refreshes the idle TTL.
func (s *MemoryStore) session(sessionID string, create bool) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.lookup(sessionID)
	if sess == nil {
		if !create {
			return nil
		}
		sess = &session{}
	}
	s.sessions.Set(sessionID, sess, cache.DefaultExpiration)
	return sess
}

// lookup finds a live or pinned session without refreshing it. s.mu must be held.
func (s *MemoryStore) lookup(sessionID string) *session {
	if sess, ok := s.pinned[sessionID]; ok {
		return sess
	}
	if v, found := s.sessions.Get(sessionID); found {
		return v.(*session)
	}
	return nil
}

// GetOrCreate implements Store.
func (s *MemoryStore) GetOrCreate(sessionID string) []domain.Turn {
	sess := s.session(sessionID, true)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	turns := make([]domain.Turn, len(sess.turns))
	copy(turns, sess.turns)
	return turns
}

// Append implements Store.
func (s *MemoryStore) Append(sessionID string, turn domain.Turn) {
	sess := s.session(sessionID, true)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, turn)
	if s.maxTurns > 0 && len(sess.turns) > s.maxTurns {
		trimmed := make([]domain.Turn, s.maxTurns)
		copy(trimmed, sess.turns[len(sess.turns)-s.maxTurns:])
		sess.turns = trimmed
	}
}

// Clear implements Store.
func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions.Delete(sessionID)
	delete(s.pinned, sessionID)
}

// Snapshot implements Store. Unknown sessions yield an empty slice and are
// not registered. Reading does not refresh the idle TTL.
func (s *MemoryStore) Snapshot(sessionID string) []string {
	s.mu.Lock()
	sess := s.lookup(sessionID)
	s.mu.Unlock()
	if sess == nil {
		return []string{}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]string, len(sess.turns))
	for i, turn := range sess.turns {
		out[i] = turn.Content
	}
	return out
}

// Lock implements Store. The session is registered if absent and cannot
// expire until unlock; unlocking restarts its idle TTL.
func (s *MemoryStore) Lock(sessionID string) func() {
	release := s.locks.lock(sessionID)

	sess := s.session(sessionID, true)
	s.mu.Lock()
	s.pinned[sessionID] = sess
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			// Clear drops the pin; a cleared session stays gone.
			if s.pinned[sessionID] == sess {
				delete(s.pinned, sessionID)
				s.sessions.Set(sessionID, sess, cache.DefaultExpiration)
			}
			s.mu.Unlock()
			release()
		})
	}
}

// Count returns the number of live sessions.
func (s *MemoryStore) Count() int {
	return s.sessions.ItemCount()
}
