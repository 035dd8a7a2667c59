package memory

import (
	"context"
	"sync"
)

// InMem keeps records in process memory, append-ordered per namespace.
// The default store for interactive sessions and tests.
type InMem struct {
	mu      sync.RWMutex
	entries map[Namespace][]Entry
}

var _ Store = (*InMem)(nil)

func NewInMem() *InMem {
	return &InMem{entries: make(map[Namespace][]Entry)}
}

func (s *InMem) Put(ctx context.Context, ns Namespace, id string, record map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ns] = append(s.entries[ns], Entry{ID: id, Record: record})
	return nil
}

func (s *InMem) List(ctx context.Context, ns Namespace) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries[ns]))
	copy(out, s.entries[ns])
	return out, nil
}
