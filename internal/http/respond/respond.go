package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

type errorResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error answers with the status matching err's kind. Store and unknown
// failures are logged with detail and answered with fallback only.
func Error(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	kind := expense.KindOf(err)

	switch kind {
	case expense.KindValidation:
		JSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case expense.KindAuth:
		JSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
	default:
		slog.ErrorContext(r.Context(), fallback, "error", err, "kind", kind.String())
		JSON(w, http.StatusInternalServerError, errorResponse{Message: fallback})
	}
}
