package expense

// Record is a single persisted household transaction.
//
// The json and dynamodbav names are the durable storage contract and must not change.
type Record struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Owner       string  `json:"userId" dynamodbav:"userId"`
	Category    string  `json:"category" dynamodbav:"category"`
	Amount      float64 `json:"amount" dynamodbav:"amount"`
	Description string  `json:"description" dynamodbav:"description"`
	Date        string  `json:"date" dynamodbav:"date"`
	YearMonth   string  `json:"yearMonth" dynamodbav:"yearMonth"`
	CreatedAt   int64   `json:"createdAt" dynamodbav:"createdAt"` // epoch milliseconds
	UpdatedAt   int64   `json:"updatedAt" dynamodbav:"updatedAt"` // epoch milliseconds
}

// MonthlySummary groups the amounts of one yearMonth. Its json form is what
// every surface returns for groupBy=month.
type MonthlySummary struct {
	YearMonth         string             `json:"yearMonth"`
	TotalAmount       float64            `json:"totalAmount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
}

// CategorySummary groups the amounts of one category. Its json form is what
// every surface returns for groupBy=category.
type CategorySummary struct {
	Category       string             `json:"category"`
	TotalAmount    float64            `json:"totalAmount"`
	MonthBreakdown map[string]float64 `json:"monthBreakdown"`
}
