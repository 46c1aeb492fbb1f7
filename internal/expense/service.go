package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=expense

// Store is the persistence seam of the service. Implementations give no
// ordering guarantee on Query or Scan results.
type Store interface {
	// Put upserts r keyed by its ID.
	Put(ctx context.Context, r *Record) error
	// Query returns every record whose attribute behind index equals key.
	Query(ctx context.Context, index Index, key string) ([]*Record, error)
	// Scan returns every record matching pred.
	Scan(ctx context.Context, pred Predicate) ([]*Record, error)
}

type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// List returns the owner's records selected by filter, in store order.
func (s *Service) List(ctx context.Context, owner string, filter ListFilter) ([]*Record, error) {
	if owner == "" {
		return nil, ErrUnauthorized
	}

	p, err := PlanFor(filter)
	if err != nil {
		return nil, err
	}

	candidates, err := s.execute(ctx, p)
	if err != nil {
		return nil, err
	}

	owned := OwnedBy(owner)
	records := make([]*Record, 0, len(candidates))

	for _, r := range candidates {
		if owned.Match(r) {
			records = append(records, r)
		}
	}

	return records, nil
}

// Report lists the owner's records and groups them.
func (s *Service) Report(ctx context.Context, owner string, filter ListFilter, g Grouping) (Report, error) {
	records, err := s.List(ctx, owner, filter)
	if err != nil {
		return Report{}, err
	}

	return Aggregate(records, g), nil
}

func (s *Service) execute(ctx context.Context, p Plan) ([]*Record, error) {
	switch p := p.(type) {
	case IndexLookup:
		records, err := s.store.Query(ctx, p.Index, p.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: querying %s: %w", ErrStore, p.Index, err)
		}

		return records, nil
	case FullScan:
		records, err := s.store.Scan(ctx, p.Predicate)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning expenses: %w", ErrStore, err)
		}

		return records, nil
	}

	return nil, fmt.Errorf("unsupported plan %T", p)
}
