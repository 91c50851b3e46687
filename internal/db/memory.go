package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"employee-management/internal/models"
)

// MemoryStore keeps employees in process. Records are copied in and out so
// callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Employee
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.Employee),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Find(ctx context.Context) ([]models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	list := make([]models.Employee, 0, len(s.records))
	for _, e := range s.records {
		list = append(list, e)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemoryStore) Insert(ctx context.Context, e *models.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(e.Email, "") {
		return ErrDuplicateEmail
	}
	prepareInsert(e, s.now())
	s.records[e.ID] = *e
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch models.EmployeePatch) (*models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Email != nil && s.emailTaken(*patch.Email, id) {
		return nil, ErrDuplicateEmail
	}
	patch.Apply(&e)
	e.UpdatedAt = s.now()
	s.records[id] = e
	return &e, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() {}

// emailTaken must be called with mu held.
func (s *MemoryStore) emailTaken(email, exceptID string) bool {
	for id, e := range s.records {
		if id != exceptID && e.Email == email {
			return true
		}
	}
	return false
}
