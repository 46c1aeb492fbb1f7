package expense

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/http/auth"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type createExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"message": "Request body is required"})
			return
		}

		respond.JSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})

		return
	}

	amount, err := expense.CoerceAmount(req.Amount)
	if err != nil {
		respond.Error(w, r, err, "Error creating expense")
		return
	}

	rec, err := h.svc.Create(r.Context(), auth.Owner(r.Context()), expense.CreateParams{
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respond.Error(w, r, err, "Error creating expense")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	g, err := expense.ParseGrouping(q.Get("groupBy"))
	if err != nil {
		respond.Error(w, r, err, "Error fetching expenses")
		return
	}

	rep, err := h.svc.Report(r.Context(), auth.Owner(r.Context()), FilterFromQuery(r), g)
	if err != nil {
		respond.Error(w, r, err, "Error fetching expenses")
		return
	}

	respond.JSON(w, http.StatusOK, toReportResponse(rep))
}

// FilterFromQuery reads the year, month and category listing parameters.
func FilterFromQuery(r *http.Request) expense.ListFilter {
	q := r.URL.Query()

	return expense.ListFilter{
		Year:     q.Get("year"),
		Month:    q.Get("month"),
		Category: q.Get("category"),
	}
}
