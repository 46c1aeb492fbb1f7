package expense

import "fmt"

// Grouping selects how a listing is summarized.
type Grouping int

const (
	GroupNone Grouping = iota
	GroupByMonth
	GroupByCategory
)

func (g Grouping) String() string {
	switch g {
	case GroupByMonth:
		return "month"
	case GroupByCategory:
		return "category"
	}

	return ""
}

// ParseGrouping maps the groupBy query value. The empty string means no grouping.
func ParseGrouping(s string) (Grouping, error) {
	switch s {
	case "":
		return GroupNone, nil
	case "month":
		return GroupByMonth, nil
	case "category":
		return GroupByCategory, nil
	}

	return GroupNone, fmt.Errorf("%w: unknown groupBy %q", ErrValidation, s)
}

// Report is the outcome of a listing. Exactly one of the slices is meaningful,
// as selected by Grouping.
type Report struct {
	Grouping   Grouping
	Records    []*Record
	Months     []MonthlySummary
	Categories []CategorySummary
}

// Aggregate groups records according to g. It never modifies records.
func Aggregate(records []*Record, g Grouping) Report {
	switch g {
	case GroupByMonth:
		return Report{Grouping: g, Months: GroupMonths(records)}
	case GroupByCategory:
		return Report{Grouping: g, Categories: GroupCategories(records)}
	}

	return Report{Grouping: GroupNone, Records: records}
}

// GroupMonths builds one MonthlySummary per distinct yearMonth, in the order each
// yearMonth is first seen in records.
func GroupMonths(records []*Record) []MonthlySummary {
	summaries := make([]MonthlySummary, 0)
	pos := make(map[string]int)

	for _, r := range records {
		i, ok := pos[r.YearMonth]
		if !ok {
			i = len(summaries)
			pos[r.YearMonth] = i
			summaries = append(summaries, MonthlySummary{
				YearMonth:         r.YearMonth,
				CategoryBreakdown: make(map[string]float64),
			})
		}

		s := &summaries[i]
		s.TotalAmount += r.Amount
		s.CategoryBreakdown[r.Category] += r.Amount
	}

	return summaries
}

// GroupCategories builds one CategorySummary per distinct category, in the order
// each category is first seen in records.
func GroupCategories(records []*Record) []CategorySummary {
	summaries := make([]CategorySummary, 0)
	pos := make(map[string]int)

	for _, r := range records {
		i, ok := pos[r.Category]
		if !ok {
			i = len(summaries)
			pos[r.Category] = i
			summaries = append(summaries, CategorySummary{
				Category:       r.Category,
				MonthBreakdown: make(map[string]float64),
			})
		}

		s := &summaries[i]
		s.TotalAmount += r.Amount
		s.MonthBreakdown[r.YearMonth] += r.Amount
	}

	return summaries
}
