package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/expense/store/memory"
)

func TestStore_PutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	r := &expense.Record{ID: "a", Owner: "u", Category: "Dining", Amount: 3, YearMonth: "2025-01"}
	require.NoError(t, s.Put(ctx, r))
	require.NoError(t, s.Put(ctx, r))

	assert.Equal(t, 1, s.Len())

	all, err := s.Scan(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *r, *all[0])
}

func TestStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Put(ctx, &expense.Record{ID: "a", Amount: 1}))
	require.NoError(t, s.Put(ctx, &expense.Record{ID: "a", Amount: 2}))

	all, err := s.Scan(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2.0, all[0].Amount)
}

func TestStore_Query(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Put(ctx, &expense.Record{ID: "1", Category: "A", YearMonth: "2025-04"}))
	require.NoError(t, s.Put(ctx, &expense.Record{ID: "2", Category: "B", YearMonth: "2025-04"}))
	require.NoError(t, s.Put(ctx, &expense.Record{ID: "3", Category: "A", YearMonth: "2025-05"}))

	byMonth, err := s.Query(ctx, expense.IndexYearMonth, "2025-04")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, ids(byMonth))

	byCategory, err := s.Query(ctx, expense.IndexCategory, "A")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "3"}, ids(byCategory))

	_, err = s.Query(ctx, expense.Index("userId-index"), "u")
	assert.Error(t, err)
}

func TestStore_ScanPredicate(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Put(ctx, &expense.Record{ID: "1", Owner: "u1"}))
	require.NoError(t, s.Put(ctx, &expense.Record{ID: "2", Owner: "u2"}))

	got, err := s.Scan(ctx, expense.OwnedBy("u2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Put(ctx, &expense.Record{ID: "1", Category: "A"}))

	got, err := s.Scan(ctx, nil)
	require.NoError(t, err)
	got[0].Category = "changed"

	again, err := s.Scan(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Category)
}

func TestStore_RejectsMissingID(t *testing.T) {
	assert.Error(t, memory.New().Put(context.Background(), &expense.Record{}))
}

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := expense.NewService(memory.New())

	five, ten := 5.0, 10.0

	_, err := svc.Create(ctx, "u1", expense.CreateParams{Category: "A", Amount: &five, Date: "2025-04-10"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", expense.CreateParams{Category: "A", Amount: &ten, Date: "2025-05-01"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", expense.CreateParams{Category: "A", Amount: &ten, Date: "2025-05-01"})
	require.NoError(t, err)

	report, err := svc.Report(ctx, "u1", expense.ListFilter{}, expense.GroupByCategory)
	require.NoError(t, err)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, expense.CategorySummary{
		Category:       "A",
		TotalAmount:    15,
		MonthBreakdown: map[string]float64{"2025-04": 5, "2025-05": 10},
	}, report.Categories[0])
}

func ids(records []*expense.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}

	return out
}
