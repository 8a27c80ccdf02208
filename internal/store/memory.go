package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobtrack/pkg/models"
	"jobtrack/pkg/utils"
)

// MemoryStore is an in-process Store used in tests and for running without
// a Redis backend. It mirrors RedisStore's semantics, including the
// snapshot-on-mutation subscription behavior.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]models.Application
	subscribers map[string][]chan []models.Application
	now         func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]models.Application),
		subscribers: make(map[string][]chan []models.Application),
		now:         time.Now,
	}
}

// WithClock overrides the store's time source. Used by tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }
func (s *MemoryStore) Close() error                   { return nil }

func (s *MemoryStore) List(ctx context.Context, path string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(path), nil
}

func (s *MemoryStore) Get(ctx context.Context, path, id string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.collections[path][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := app
	return &out, nil
}

func (s *MemoryStore) Create(ctx context.Context, path string, app models.Application) (string, error) {
	s.mu.Lock()
	if app.ID == "" {
		app.ID = utils.GenerateRequestID()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = s.now()
	}
	if s.collections[path] == nil {
		s.collections[path] = make(map[string]models.Application)
	}
	s.collections[path][app.ID] = app
	s.mu.Unlock()

	s.notify(path)
	return app.ID, nil
}

func (s *MemoryStore) Update(ctx context.Context, path, id string, patch models.ApplicationPatch) error {
	s.mu.Lock()
	existing, ok := s.collections[path][id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	patch.Apply(&existing)
	now := s.now()
	existing.UpdatedAt = &now
	s.collections[path][id] = existing
	s.mu.Unlock()

	s.notify(path)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, path, id string) error {
	s.mu.Lock()
	if _, ok := s.collections[path][id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.collections[path], id)
	s.mu.Unlock()

	s.notify(path)
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, path string) (<-chan []models.Application, error) {
	ch := make(chan []models.Application, 8)

	s.mu.Lock()
	s.subscribers[path] = append(s.subscribers[path], ch)
	ch <- s.snapshotLocked(path)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		subs := s.subscribers[path]
		for i, sub := range subs {
			if sub == ch {
				s.subscribers[path] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
		s.mu.Unlock()
	}()
	return ch, nil
}

// snapshotLocked copies the collection; callers hold at least a read lock.
func (s *MemoryStore) snapshotLocked(path string) []models.Application {
	records := make([]models.Application, 0, len(s.collections[path]))
	for _, app := range s.collections[path] {
		records = append(records, app)
	}
	return records
}

func (s *MemoryStore) notify(path string) {
	s.mu.RLock()
	snapshot := s.snapshotLocked(path)
	subs := make([]chan []models.Application, len(s.subscribers[path]))
	copy(subs, s.subscribers[path])
	s.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default: // a slow subscriber drops intermediate snapshots
		}
	}
}
