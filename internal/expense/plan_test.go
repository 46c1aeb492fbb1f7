package expense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

func TestPlanFor(t *testing.T) {
	tests := []struct {
		name    string
		filter  expense.ListFilter
		want    expense.Plan
		wantErr bool
	}{
		{
			name:   "YearMonth",
			filter: expense.ListFilter{Year: "2025", Month: "4"},
			want:   expense.IndexLookup{Index: expense.IndexYearMonth, Key: "2025-04"},
		},
		{
			name:   "YearMonthIgnoresCategory",
			filter: expense.ListFilter{Year: "2025", Month: "11", Category: "Dining"},
			want:   expense.IndexLookup{Index: expense.IndexYearMonth, Key: "2025-11"},
		},
		{
			name:   "Category",
			filter: expense.ListFilter{Category: "Dining"},
			want:   expense.IndexLookup{Index: expense.IndexCategory, Key: "Dining"},
		},
		{
			name:   "MonthWithoutYearUsesCategory",
			filter: expense.ListFilter{Month: "4", Category: "Dining"},
			want:   expense.IndexLookup{Index: expense.IndexCategory, Key: "Dining"},
		},
		{
			name:   "Nothing",
			filter: expense.ListFilter{},
			want:   expense.FullScan{},
		},
		{
			name:    "BadYear",
			filter:  expense.ListFilter{Year: "twenty", Month: "4"},
			wantErr: true,
		},
		{
			name:    "MonthZero",
			filter:  expense.ListFilter{Year: "2025", Month: "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expense.PlanFor(tt.filter)
			if tt.wantErr {
				assert.ErrorIs(t, err, expense.ErrValidation)
				return
			}

			require.NoError(t, err)

			if scan, ok := tt.want.(expense.FullScan); ok {
				gotScan, isScan := got.(expense.FullScan)
				require.True(t, isScan)
				assert.Equal(t, scan.Predicate == nil, gotScan.Predicate == nil)

				return
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredicate(t *testing.T) {
	r := &expense.Record{Owner: "user-1"}

	assert.True(t, expense.Predicate(nil).Match(r))
	assert.True(t, expense.OwnedBy("user-1").Match(r))
	assert.False(t, expense.OwnedBy("user-2").Match(r))
}

func TestIndex_Valid(t *testing.T) {
	assert.True(t, expense.IndexYearMonth.Valid())
	assert.True(t, expense.IndexCategory.Valid())
	assert.False(t, expense.Index("userId-index").Valid())
}
