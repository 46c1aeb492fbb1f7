package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

// Handler serves the expense API behind an API Gateway proxy integration with
// a Cognito user pool authorizer.
type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

type createExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// Handle routes by HTTP method. Errors are always turned into a response; the
// returned error is reserved for failures the runtime should see.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case http.MethodPost:
		return h.create(ctx, req), nil
	case http.MethodGet:
		return h.list(ctx, req), nil
	}

	return respond(http.StatusMethodNotAllowed, message("Method not allowed")), nil
}

func (h *Handler) create(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	body := req.Body
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return respond(http.StatusBadRequest, message("Invalid request body"))
		}

		body = string(decoded)
	}

	if body == "" {
		return respond(http.StatusBadRequest, message("Request body is required"))
	}

	var in createExpenseRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return respond(http.StatusBadRequest, message("Invalid request body"))
	}

	amount, err := expense.CoerceAmount(in.Amount)
	if err != nil {
		return failure(ctx, err, "Error creating expense")
	}

	rec, err := h.svc.Create(ctx, Owner(req), expense.CreateParams{
		Category:    in.Category,
		Amount:      amount,
		Description: in.Description,
		Date:        in.Date,
	})
	if err != nil {
		return failure(ctx, err, "Error creating expense")
	}

	return respond(http.StatusCreated, rec)
}

func (h *Handler) list(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	q := req.QueryStringParameters

	g, err := expense.ParseGrouping(q["groupBy"])
	if err != nil {
		return failure(ctx, err, "Error fetching expenses")
	}

	rep, err := h.svc.Report(ctx, Owner(req), expense.ListFilter{
		Year:     q["year"],
		Month:    q["month"],
		Category: q["category"],
	}, g)
	if err != nil {
		return failure(ctx, err, "Error fetching expenses")
	}

	switch rep.Grouping {
	case expense.GroupByMonth:
		return respond(http.StatusOK, rep.Months)
	case expense.GroupByCategory:
		return respond(http.StatusOK, rep.Categories)
	}

	records := rep.Records
	if records == nil {
		records = []*expense.Record{}
	}

	return respond(http.StatusOK, records)
}

// Owner returns the authorizer's "sub" claim, or "" when the request carries
// no claims.
func Owner(req events.APIGatewayProxyRequest) string {
	claims, ok := req.RequestContext.Authorizer["claims"].(map[string]any)
	if !ok {
		return ""
	}

	sub, _ := claims["sub"].(string)

	return sub
}

func message(msg string) map[string]string {
	return map[string]string{"message": msg}
}

func failure(ctx context.Context, err error, fallback string) events.APIGatewayProxyResponse {
	kind := expense.KindOf(err)

	switch kind {
	case expense.KindValidation:
		return respond(http.StatusBadRequest, message(err.Error()))
	case expense.KindAuth:
		return respond(http.StatusUnauthorized, message("Unauthorized"))
	}

	slog.ErrorContext(ctx, fallback, "error", err, "kind", kind.String())

	return respond(http.StatusInternalServerError, message(fallback))
}

func respond(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)

		status = http.StatusInternalServerError
		body = []byte(`{"message":"Internal server error"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}
