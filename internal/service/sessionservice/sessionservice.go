package sessionservice

import (
	"errors"
	"sync"
	"time"
)

// Selection is the short-lived state between choosing a duration and paying
// the invoice. It lives outside the durable aggregate and holds no number
// reservation.
type Selection struct {
	Number string
	Months int
	Price  float64
}

var ErrNoSelection = errors.New("no pending selection")

type entry struct {
	selection Selection
	expires   time.Time
}

// Service is a TTL-bounded per-user selection store. Entries expire on
// their own so an abandoned flow cannot grow the map for the process
// lifetime.
type Service struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int]entry
	now      func() time.Time
}

func New(ttl time.Duration) *Service {
	return &Service{
		ttl:      ttl,
		sessions: make(map[int]entry),
		now:      time.Now,
	}
}

func (s *Service) Put(userID int, selection Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.sessions[userID] = entry{
		selection: selection,
		expires:   s.now().Add(s.ttl),
	}
}

func (s *Service) Get(userID int) (*Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSelection
	}
	if !e.expires.After(s.now()) {
		delete(s.sessions, userID)
		return nil, ErrNoSelection
	}
	selection := e.selection
	return &selection, nil
}

func (s *Service) Clear(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *Service) evictLocked() {
	now := s.now()
	for userID, e := range s.sessions {
		if !e.expires.After(now) {
			delete(s.sessions, userID)
		}
	}
}
