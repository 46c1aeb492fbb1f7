package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

// Store keeps records in process memory. Query and Scan return records in
// insertion order, which callers must not rely on.
type Store struct {
	mu    sync.Mutex
	ids   []string
	items map[string]expense.Record
}

func New() *Store {
	return &Store{items: make(map[string]expense.Record)}
}

func (s *Store) Put(_ context.Context, r *expense.Record) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("record id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[r.ID]; !ok {
		s.ids = append(s.ids, r.ID)
	}

	s.items[r.ID] = *r

	return nil
}

func (s *Store) Query(_ context.Context, index expense.Index, key string) ([]*expense.Record, error) {
	var attr func(r *expense.Record) string

	switch index {
	case expense.IndexYearMonth:
		attr = func(r *expense.Record) string { return r.YearMonth }
	case expense.IndexCategory:
		attr = func(r *expense.Record) string { return r.Category }
	default:
		return nil, fmt.Errorf("unknown index %q", index)
	}

	return s.collect(func(r *expense.Record) bool { return attr(r) == key }), nil
}

func (s *Store) Scan(_ context.Context, pred expense.Predicate) ([]*expense.Record, error) {
	return s.collect(pred), nil
}

// Len reports the number of distinct records held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.ids)
}

func (s *Store) collect(pred expense.Predicate) []*expense.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*expense.Record, 0, len(s.ids))

	for _, id := range s.ids {
		r := s.items[id]
		if pred.Match(&r) {
			records = append(records, &r)
		}
	}

	return records
}
