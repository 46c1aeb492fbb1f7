package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

// Creator is the part of expense.Service the importer needs.
type Creator interface {
	Create(ctx context.Context, owner string, params expense.CreateParams) (*expense.Record, error)
}

type Service struct {
	expenses Creator
}

func NewService(expenses Creator) *Service {
	return &Service{expenses: expenses}
}

// Import parses r and creates one record per data row. It stops at the first
// row that fails; records created before that row are kept and returned along
// with the error.
func (s *Service) Import(ctx context.Context, owner string, r io.Reader) ([]*expense.Record, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: no caller identity", expense.ErrUnauthorized)
	}

	rows, err := Parse(r)
	if err != nil {
		return nil, err
	}

	created := make([]*expense.Record, 0, len(rows))

	for _, row := range rows {
		rec, err := s.expenses.Create(ctx, owner, row.Params)
		if err != nil {
			return created, fmt.Errorf("row %d: %w", row.Line, err)
		}

		created = append(created, rec)
	}

	slog.InfoContext(ctx, "imported expenses", "owner", owner, "count", len(created))

	return created, nil
}
