package view

import (
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

// Period is a listing window the user can cycle through.
type Period int

const (
	PeriodAll Period = iota
	PeriodThisMonth
	PeriodLastMonth
)

func (p Period) String() string {
	switch p {
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	}

	return "All Time"
}

func (p Period) Next() Period {
	return (p + 1) % 3
}

// Filter returns the listing filter selecting p relative to now.
func (p Period) Filter(now time.Time) expense.ListFilter {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodThisMonth:
		return monthFilter(first)
	case PeriodLastMonth:
		return monthFilter(first.AddDate(0, -1, 0))
	}

	return expense.ListFilter{}
}

func monthFilter(t time.Time) expense.ListFilter {
	return expense.ListFilter{
		Year:  strconv.Itoa(t.Year()),
		Month: strconv.Itoa(int(t.Month())),
	}
}
