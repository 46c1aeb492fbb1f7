package expense

import (
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

type expenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	YearMonth   string  `json:"yearMonth"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

func toResponse(r *expense.Record) expenseResponse {
	return expenseResponse{
		ID:          r.ID,
		UserID:      r.Owner,
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
		YearMonth:   r.YearMonth,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toResponseList(records []*expense.Record) []expenseResponse {
	resp := make([]expenseResponse, len(records))
	for i, r := range records {
		resp[i] = toResponse(r)
	}

	return resp
}

// toReportResponse picks the payload matching the report's grouping.
// Summaries are sent in their domain form.
func toReportResponse(rep expense.Report) any {
	switch rep.Grouping {
	case expense.GroupByMonth:
		return rep.Months
	case expense.GroupByCategory:
		return rep.Categories
	}

	return toResponseList(rep.Records)
}
