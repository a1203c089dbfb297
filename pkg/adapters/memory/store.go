package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/program"
)

// Store implements ports.ProgramStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*program.Program
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with programs.
func NewStore(seed ...*program.Program) *Store {
	s := &Store{
		data: make(map[string]*program.Program),
	}
	for _, p := range seed {
		s.data[p.Name] = p.Clone()
	}
	return s
}

// Save persists a copy of the program.
func (s *Store) Save(ctx context.Context, prog *program.Program) error {
	if prog.Name == "" {
		return fmt.Errorf("%w: program has no name", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[prog.Name] = prog.Clone()
	return nil
}

// Load retrieves a copy of the program, so callers can't mutate the stored one.
func (s *Store) Load(ctx context.Context, name string) (*program.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prog, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, name)
	}
	return prog.Clone(), nil
}

// Delete removes the program.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored program names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
