package upload

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hazcom/internal/transport/http/shared"
	dErrors "hazcom/pkg/domain-errors"
	"hazcom/pkg/requestcontext"
)

// nameFor generates the stored object name for an upload.
func nameFor(sdsID string, now time.Time) string {
	return "sds-" + sdsID + "-" + strconv.FormatInt(now.UnixMilli(), 10) + ".pdf"
}

// Handler exposes the upload and listing endpoints.
type Handler struct {
	logger   *slog.Logger
	storage  Storage
	index    Index
	maxBytes int64
}

// New creates a new upload Handler.
func New(storage Storage, index Index, maxBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		storage:  storage,
		index:    index,
		maxBytes: maxBytes,
	}
}

// Register registers the upload routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sds/upload", h.handleUpload)
	r.Get("/sds/uploads", h.handleList)
}

// handleUpload validates the multipart request fully before touching storage.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Cap the whole request body; the form overhead margin keeps a file of
	// exactly maxBytes acceptable.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.WriteError(w, dErrors.New(dErrors.CodeTooLarge, "upload exceeds the size limit"))
			return
		}
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart request"))
		return
	}

	sdsID := r.FormValue("sdsId")
	if sdsID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "sdsId is required"))
		return
	}
	uploadedBy := r.FormValue("uploadedBy")

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "file is required"))
		return
	}
	defer file.Close()

	if !isPDF(header.Header.Get("Content-Type"), header.Filename) {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "only PDF uploads are accepted"))
		return
	}
	if header.Size > h.maxBytes {
		shared.WriteError(w, dErrors.New(dErrors.CodeTooLarge, "upload exceeds the size limit"))
		return
	}

	now := requestcontext.Now(ctx)
	record := Record{
		SDSID:        sdsID,
		FileName:     nameFor(sdsID, now),
		OriginalName: header.Filename,
		UploadedAt:   now,
		UploadedBy:   uploadedBy,
		FileSize:     header.Size,
	}

	if err := h.storage.Save(ctx, record.FileName, file, header.Size); err != nil {
		h.logger.ErrorContext(ctx, "failed to store upload",
			"request_id", requestcontext.RequestID(ctx),
			"sds_id", sdsID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to store upload"))
		return
	}

	if err := h.index.Put(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to index upload",
			"request_id", requestcontext.RequestID(ctx),
			"sds_id", sdsID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to index upload"))
		return
	}

	shared.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.index.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list uploads",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list uploads"))
		return
	}
	if records == nil {
		records = []Record{}
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func isPDF(contentType, filename string) bool {
	if strings.EqualFold(contentType, "application/pdf") {
		return true
	}
	// Some browsers send a generic type; fall back to the extension.
	if contentType == "" || contentType == "application/octet-stream" {
		return strings.HasSuffix(strings.ToLower(filename), ".pdf")
	}
	return false
}
