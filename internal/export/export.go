package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

var header = []string{"id", "date", "yearMonth", "category", "amount", "description", "createdAt", "updatedAt"}

// Lister is the part of expense.Service the exporter needs.
type Lister interface {
	List(ctx context.Context, owner string, filter expense.ListFilter) ([]*expense.Record, error)
}

// Service writes listings as CSV.
type Service struct {
	expenses Lister
}

func NewService(expenses Lister) *Service {
	return &Service{expenses: expenses}
}

// Export lists the owner's records selected by filter and writes them to w.
// Nothing is written when the listing fails.
func (s *Service) Export(ctx context.Context, owner string, filter expense.ListFilter, w io.Writer) (int, error) {
	records, err := s.expenses.List(ctx, owner, filter)
	if err != nil {
		return 0, err
	}

	if err := WriteCSV(w, records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// WriteCSV writes records with a header row. Amounts are fixed to two decimals.
func WriteCSV(w io.Writer, records []*expense.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Date,
			r.YearMonth,
			r.Category,
			decimal.NewFromFloat(r.Amount).StringFixed(2),
			r.Description,
			strconv.FormatInt(r.CreatedAt, 10),
			strconv.FormatInt(r.UpdatedAt, 10),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename names an export file after the filter it was produced from.
func Filename(filter expense.ListFilter) string {
	switch {
	case filter.Year != "" && filter.Month != "":
		if ym, err := expense.ParseYearMonth(filter.Year, filter.Month); err == nil {
			return "expenses_" + ym + ".csv"
		}
	case filter.Category != "":
		return "expenses_" + sanitize(filter.Category) + ".csv"
	}

	return "expenses.csv"
}

func sanitize(s string) string {
	out := []rune(s)
	for i, r := range out {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			out[i] = '_'
		}
	}

	return string(out)
}
