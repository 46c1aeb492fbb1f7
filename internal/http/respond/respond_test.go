package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Validation",
			err:        fmt.Errorf("%w: amount required", expense.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"validation failed: amount required"}`,
		},
		{
			name:       "Auth",
			err:        expense.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:       "Store",
			err:        fmt.Errorf("%w: saving expense: %w", expense.ErrStore, errors.New("connection refused on 10.0.0.7")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Error creating expense"}`,
		},
		{
			name:       "Unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Error creating expense"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)

			respond.Error(rec, req, tt.err, "Error creating expense")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
