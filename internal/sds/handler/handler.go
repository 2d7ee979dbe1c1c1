package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hazcom/internal/sds/models"
	"hazcom/internal/transport/http/shared"
	dErrors "hazcom/pkg/domain-errors"
	"hazcom/pkg/requestcontext"
)

// Service defines the interface for SDS resolution.
type Service interface {
	Resolve(ctx context.Context, productName, manufacturer string) (*models.Resolution, error)
}

// Handler exposes the resolution endpoint.
type Handler struct {
	logger *slog.Logger
	sds    Service
	guard  func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithGuard installs a middleware (the rate limiter) in front of the resolve
// route only; listing-style routes stay unguarded.
func WithGuard(guard func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.guard = guard
	}
}

// New creates a new SDS Handler.
func New(sds Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{logger: logger, sds: sds}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the SDS routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	if h.guard != nil {
		r.With(h.guard).Post("/sds/resolve", h.handleResolve)
		return
	}
	r.Post("/sds/resolve", h.handleResolve)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.ProductName == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "product_name is required"))
		return
	}
	if req.Manufacturer == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "manufacturer is required"))
		return
	}

	resolution, err := h.sds.Resolve(ctx, req.ProductName, req.Manufacturer)
	if err != nil {
		h.logger.ErrorContext(ctx, "sds resolution failed",
			"request_id", requestID,
			"product_name", req.ProductName,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, models.ResolveResponse{
		SDSURL:                resolution.Record.SDSURL,
		SDSSource:             resolution.Record.SDSSource,
		ManufacturerSDSPortal: resolution.Record.ManufacturerPortalURL,
		Confidence:            resolution.Record.Confidence,
		Notes:                 resolution.Notes,
	})
}
