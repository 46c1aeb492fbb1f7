package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/spendwise/internal/database"
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

type Store struct {
	db      *sql.DB
	dialect database.Dialect
}

func New(db *sql.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `
	id, user_id, category, amount, description, date, year_month, created_at, updated_at
`

// indexColumns maps store indexes to the columns they cover.
var indexColumns = map[expense.Index]string{
	expense.IndexYearMonth: "year_month",
	expense.IndexCategory:  "category",
}

func scanExpense(s scanner) (*expense.Record, error) {
	var r expense.Record

	if err := s.Scan(
		&r.ID, &r.Owner, &r.Category, &r.Amount, &r.Description, &r.Date, &r.YearMonth,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

func (s *Store) Put(ctx context.Context, r *expense.Record) error {
	query := s.rebind(`
		INSERT INTO expenses (id, user_id, category, amount, description, date, year_month, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			category = excluded.category,
			amount = excluded.amount,
			description = excluded.description,
			date = excluded.date,
			year_month = excluded.year_month,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`)

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.Owner,
		r.Category,
		r.Amount,
		r.Description,
		r.Date,
		r.YearMonth,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting expense: %w", err)
	}

	return nil
}

func (s *Store) Query(ctx context.Context, index expense.Index, key string) ([]*expense.Record, error) {
	col, ok := indexColumns[index]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", index)
	}

	query := s.rebind(`SELECT ` + selectExpenseColumns + ` FROM expenses WHERE ` + col + ` = ?`)

	return s.list(ctx, nil, query, key)
}

func (s *Store) Scan(ctx context.Context, pred expense.Predicate) ([]*expense.Record, error) {
	return s.list(ctx, pred, `SELECT `+selectExpenseColumns+` FROM expenses`)
}

func (s *Store) list(ctx context.Context, pred expense.Predicate, query string, args ...any) ([]*expense.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var records []*expense.Record

	for rows.Next() {
		r, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		if pred.Match(r) {
			records = append(records, r)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return records, nil
}

// rebind rewrites ? placeholders into the dialect's positional form.
func (s *Store) rebind(query string) string {
	if s.dialect != database.Postgres {
		return query
	}

	var b strings.Builder

	n := 0

	for _, c := range query {
		if c != '?' {
			b.WriteRune(c)
			continue
		}

		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
