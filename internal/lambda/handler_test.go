package lambda_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/expense/store/memory"
	"github.com/MrJamesThe3rd/spendwise/internal/lambda"
)

func request(method, owner, body string, query map[string]string) events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{
		HTTPMethod:            method,
		Body:                  body,
		QueryStringParameters: query,
	}

	if owner != "" {
		req.RequestContext.Authorizer = map[string]any{
			"claims": map[string]any{"sub": owner, "email": owner + "@example.com"},
		}
	}

	return req
}

func message(t *testing.T, resp events.APIGatewayProxyResponse) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))

	return body["message"]
}

func TestOwner(t *testing.T) {
	assert.Equal(t, "u1", lambda.Owner(request(http.MethodGet, "u1", "", nil)))
	assert.Equal(t, "", lambda.Owner(request(http.MethodGet, "", "", nil)))

	var req events.APIGatewayProxyRequest
	req.RequestContext.Authorizer = map[string]any{"claims": "not-a-map"}
	assert.Equal(t, "", lambda.Owner(req))
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name        string
		req         events.APIGatewayProxyRequest
		wantStatus  int
		wantMessage string
		wantStored  int
	}

	valid := `{"category":"Groceries","amount":42.5,"date":"2025-04-02"}`

	tests := []testCase{
		{name: "Created", req: request(http.MethodPost, "u1", valid, nil), wantStatus: http.StatusCreated, wantStored: 1},
		{
			name: "Base64 Body",
			req: events.APIGatewayProxyRequest{
				HTTPMethod:      http.MethodPost,
				Body:            base64.StdEncoding.EncodeToString([]byte(valid)),
				IsBase64Encoded: true,
				RequestContext: events.APIGatewayProxyRequestContext{
					Authorizer: map[string]any{"claims": map[string]any{"sub": "u1"}},
				},
			},
			wantStatus: http.StatusCreated,
			wantStored: 1,
		},
		{name: "Empty Body", req: request(http.MethodPost, "u1", "", nil), wantStatus: http.StatusBadRequest, wantMessage: "Request body is required"},
		{name: "Malformed Body", req: request(http.MethodPost, "u1", "{", nil), wantStatus: http.StatusBadRequest, wantMessage: "Invalid request body"},
		{
			name:        "Missing Fields",
			req:         request(http.MethodPost, "u1", `{"description":"x"}`, nil),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "validation failed: category, amount, date required",
		},
		{name: "No Claims", req: request(http.MethodPost, "", valid, nil), wantStatus: http.StatusUnauthorized, wantMessage: "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			h := lambda.NewHandler(expense.NewService(store))

			resp, err := h.Handle(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			assert.Equal(t, tt.wantStored, store.Len())

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, message(t, resp))
			}
		})
	}
}

func TestHandler_CreateStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := expense.NewMockStore(ctrl)
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("ResourceNotFoundException: table Expenses"))

	h := lambda.NewHandler(expense.NewService(store))

	resp, err := h.Handle(context.Background(),
		request(http.MethodPost, "u1", `{"category":"A","amount":1,"date":"2025-04-02"}`, nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error creating expense", message(t, resp))
}

func TestHandler_List(t *testing.T) {
	ctx := context.Background()
	h := lambda.NewHandler(expense.NewService(memory.New()))

	for _, body := range []string{
		`{"category":"A","amount":10,"date":"2025-04-01"}`,
		`{"category":"B","amount":20,"date":"2025-04-20"}`,
		`{"category":"A","amount":5,"date":"2025-05-01"}`,
	} {
		resp, err := h.Handle(ctx, request(http.MethodPost, "u1", body, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	tests := []struct {
		name       string
		owner      string
		query      map[string]string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Group By Month",
			owner:      "u1",
			query:      map[string]string{"year": "2025", "month": "4", "groupBy": "month"},
			wantStatus: http.StatusOK,
			wantBody:   `[{"yearMonth":"2025-04","totalAmount":30,"categoryBreakdown":{"A":10,"B":20}}]`,
		},
		{
			name:       "Group By Category",
			owner:      "u1",
			query:      map[string]string{"category": "A", "groupBy": "category"},
			wantStatus: http.StatusOK,
			wantBody:   `[{"category":"A","totalAmount":15,"monthBreakdown":{"2025-04":10,"2025-05":5}}]`,
		},
		{
			name:       "Other Owner Sees Nothing",
			owner:      "u2",
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "Unknown Grouping",
			owner:      "u1",
			query:      map[string]string{"groupBy": "day"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "No Claims",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(ctx, request(http.MethodGet, tt.owner, "", tt.query))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, resp.Body)
			}
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := lambda.NewHandler(expense.NewService(memory.New()))

	resp, err := h.Handle(context.Background(), request(http.MethodDelete, "u1", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
