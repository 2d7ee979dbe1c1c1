package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"hazcom/internal/compliance"
	"hazcom/internal/inventory"
	"hazcom/internal/platform/metrics"
	"hazcom/internal/transport/http/shared"
	dErrors "hazcom/pkg/domain-errors"
	"hazcom/pkg/requestcontext"
)

// Handler serves the compliance score report.
type Handler struct {
	logger    *slog.Logger
	chemicals inventory.ChemicalStore
	employees inventory.EmployeeStore
	metrics   *metrics.Metrics
}

// New creates a new compliance Handler.
func New(chemicals inventory.ChemicalStore, employees inventory.EmployeeStore, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		chemicals: chemicals,
		employees: employees,
		metrics:   m,
	}
}

// Register registers the compliance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/compliance/score", h.handleScore)
}

// handleScore loads both collections in parallel and computes the report.
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		chemicals []inventory.Chemical
		employees []inventory.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chemicals, err = h.chemicals.ListChemicals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = h.employees.ListEmployees(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(ctx, "failed to load inventory for scoring",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "inventory store unavailable"))
		return
	}

	result := compliance.Score(chemicals, employees, requestcontext.Now(ctx))
	h.metrics.IncrementScoreRequests()
	shared.WriteJSON(w, http.StatusOK, result)
}
