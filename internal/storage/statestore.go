package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shadownumbers/numrent/internal/domain"
)

// Store keeps the whole state aggregate in one JSON document and runs every
// access as a load-mutate-save cycle under a single mutex, so check-and-flip
// sequences like grant never interleave.
type Store struct {
	path string
	mu   sync.Mutex
}

type TxFunc func(state *domain.State) error

func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the current state without holding it for mutation. Used at
// startup to fail fast on an unreadable state file.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load()
}

// View runs fn against a snapshot of the state. fn must not mutate.
func (s *Store) View(ctx context.Context, fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := s.load()
	if err != nil {
		return err
	}
	return fn(state)
}

// Update runs fn against the state and persists the whole aggregate before
// returning. If fn errors, nothing is written.
func (s *Store) Update(ctx context.Context, fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return s.save(state)
}

func (s *Store) load() (*domain.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't read state file %s: %w", s.path, err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("can't parse state file %s: %w", s.path, err)
	}
	backfill(&state)
	return &state, nil
}

// backfill supplies empty defaults for sections absent from older documents
// without touching the sections that are present.
func backfill(state *domain.State) {
	if state.Numbers == nil {
		state.Numbers = make([]domain.NumberRecord, 0)
	}
	if state.Rentals == nil {
		state.Rentals = make(map[string][]domain.Rental)
	}
	if state.Payments == nil {
		state.Payments = make(map[string]domain.Payment)
	}
	if state.Promocodes == nil {
		state.Promocodes = make([]domain.PromoCode, 0)
	}
	if state.Users == nil {
		state.Users = make(map[string]domain.User)
	}
}

func (s *Store) save(state *domain.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("can't create state dir: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("can't serialize state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("can't write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("can't replace state file: %w", err)
	}
	return nil
}
