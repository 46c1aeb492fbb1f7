package importcsv

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/http/auth"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type expenseResponse struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	YearMonth string  `json:"yearMonth"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Expenses []expenseResponse `json:"expenses"`
	Message  string            `json:"message,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.JSON(w, http.StatusBadRequest, importResponse{Expenses: []expenseResponse{}, Message: "failed to parse form: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, importResponse{Expenses: []expenseResponse{}, Message: "file field is required"})
		return
	}
	defer file.Close()

	created, err := h.importSvc.Import(r.Context(), auth.Owner(r.Context()), file)
	if err != nil {
		if len(created) == 0 {
			respond.Error(w, r, err, "Error importing expenses")
			return
		}

		// Rows before the failing one were stored; report them with the failure.
		status := http.StatusBadRequest
		msg := err.Error()

		if expense.KindOf(err) != expense.KindValidation {
			slog.ErrorContext(r.Context(), "Error importing expenses", "error", err, "imported", len(created))

			status = http.StatusInternalServerError
			msg = "Error importing expenses"
		}

		respond.JSON(w, status, toImportResponse(created, msg))

		return
	}

	respond.JSON(w, http.StatusCreated, toImportResponse(created, ""))
}

func toImportResponse(records []*expense.Record, msg string) importResponse {
	resp := importResponse{
		Imported: len(records),
		Expenses: make([]expenseResponse, len(records)),
		Message:  msg,
	}

	for i, r := range records {
		resp.Expenses[i] = expenseResponse{
			ID:        r.ID,
			Category:  r.Category,
			Amount:    r.Amount,
			Date:      r.Date,
			YearMonth: r.YearMonth,
		}
	}

	return resp
}
