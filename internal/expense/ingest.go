package expense

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CreateParams is a raw creation request. Empty strings and a nil Amount are absent.
type CreateParams struct {
	Category    string
	Amount      *float64
	Description string
	Date        string
}

// Create validates params, completes the record and stores it for owner.
// Nothing is written when validation or the identity check fails.
func (s *Service) Create(ctx context.Context, owner string, params CreateParams) (*Record, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if owner == "" {
		return nil, ErrUnauthorized
	}

	date, err := ParseDate(params.Date)
	if err != nil {
		return nil, err
	}

	now := s.now().UnixMilli()
	r := &Record{
		ID:          s.newID(),
		Owner:       owner,
		Category:    params.Category,
		Amount:      *params.Amount,
		Description: params.Description,
		Date:        params.Date,
		YearMonth:   YearMonthOf(date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("%w: saving expense: %w", ErrStore, err)
	}

	return r, nil
}

func (p CreateParams) validate() error {
	var missing []string

	if p.Category == "" {
		missing = append(missing, "category")
	}

	if p.Amount == nil {
		missing = append(missing, "amount")
	}

	if p.Date == "" {
		missing = append(missing, "date")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}

	if !finite(*p.Amount) {
		return fmt.Errorf("%w: amount must be a finite number", ErrValidation)
	}

	return nil
}

// CoerceAmount converts a raw JSON amount into a number. Numbers and numeric
// strings are accepted; an absent or null value yields nil.
func CoerceAmount(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: amount: %w", ErrValidation, err)
	}

	var f float64

	switch v := v.(type) {
	case float64:
		f = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q is not a number", ErrValidation, v)
		}

		f = parsed
	default:
		return nil, fmt.Errorf("%w: amount must be a number", ErrValidation)
	}

	// ParseFloat accepts "NaN" and "Inf", which no store or encoder can carry.
	if !finite(f) {
		return nil, fmt.Errorf("%w: amount must be a finite number", ErrValidation)
	}

	return &f, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
