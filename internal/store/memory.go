package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/widget"
)

var (
	errNotFound = errors.New("no widget for session")
)

// Session is one browser session and the widget it owns.
type Session struct {
	ID         string
	Widget     *widget.Widget
	LastAccess time.Time
}

// MemoryStore is a concurrency-safe in-memory registry of widget sessions.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*Session

	newWidget func() *widget.Widget
	now       func() time.Time

	// retention configuration
	maxSessions int           // max number of live sessions
	maxAge      time.Duration // max idle time before a session is dropped
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(newWidget func() *widget.Widget, maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*Session),
		newWidget:   newWidget,
		now:         time.Now,
		maxSessions: maxSessions,
		maxAge:      maxAge,
	}
}

// GetOrCreate returns the widget for id, creating one on first use. The
// second result is true when the widget was just created.
func (s *MemoryStore) GetOrCreate(id string) (*widget.Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if ok {
		sess.LastAccess = s.now()
		return sess.Widget, false
	}

	sess = &Session{
		ID:         id,
		Widget:     s.newWidget(),
		LastAccess: s.now(),
	}
	s.data[id] = sess
	return sess.Widget, true
}

// get returns the widget for an existing session.
func (s *MemoryStore) get(id string) (*widget.Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, errNotFound
	}
	sess.LastAccess = s.now()
	return sess.Widget, nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep enforces retention and returns how many sessions were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		for id, sess := range s.data {
			if sess.LastAccess.Before(cutoff) {
				delete(s.data, id)
				removed++
			}
		}
	}

	// Enforce retention by count, least recently used first.
	if s.maxSessions > 0 && len(s.data) > s.maxSessions {
		sessions := make([]*Session, 0, len(s.data))
		for _, sess := range s.data {
			sessions = append(sessions, sess)
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].LastAccess.Before(sessions[j].LastAccess)
		})
		over := len(sessions) - s.maxSessions
		for _, sess := range sessions[:over] {
			delete(s.data, sess.ID)
			removed++
		}
	}

	return removed
}
