package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendwise/internal/export"
	"github.com/MrJamesThe3rd/spendwise/internal/http/auth"
	httpexpense "github.com/MrJamesThe3rd/spendwise/internal/http/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter := httpexpense.FilterFromQuery(r)

	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), auth.Owner(r.Context()), filter, &buf)
	if err != nil {
		respond.Error(w, r, err, "Error exporting expenses")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(filter)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err, "records", n)
	}
}
