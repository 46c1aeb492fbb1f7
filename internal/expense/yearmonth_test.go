package expense_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

func TestParseDate_YearMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-04-02", want: "2025-04"},
		{in: "2025-12-31", want: "2025-12"},
		{in: "0999-01-01", want: "0999-01"},
		{in: "2025-01-01T00:30:00+09:00", want: "2025-01"},
		{in: "2024-12-31T23:59:59.999Z", want: "2024-12"},
		{in: " 2025-04-02 ", want: "2025-04"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := expense.ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expense.YearMonthOf(d))
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025-13-01", "April 2, 2025", "2025/04/02"} {
		_, err := expense.ParseDate(in)
		assert.ErrorIs(t, err, expense.ErrValidation, in)
	}
}

func TestYearMonthOf_IgnoresLocal(t *testing.T) {
	loc := time.FixedZone("far-east", 14*60*60)
	d := time.Date(2025, time.February, 28, 23, 0, 0, 0, loc)

	assert.Equal(t, "2025-02", expense.YearMonthOf(d))
}

func TestParseYearMonth(t *testing.T) {
	got, err := expense.ParseYearMonth("2025", "4")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", got)

	got, err = expense.ParseYearMonth("2025", "09")
	require.NoError(t, err)
	assert.Equal(t, "2025-09", got)

	_, err = expense.ParseYearMonth("2025", "x")
	assert.ErrorIs(t, err, expense.ErrValidation)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, expense.KindUnknown, expense.KindOf(nil))
	assert.Equal(t, expense.KindAuth, expense.KindOf(expense.ErrUnauthorized))
	assert.Equal(t, expense.KindUnknown, expense.KindOf(assert.AnError))
	assert.Equal(t, "store", expense.KindStore.String())
}
