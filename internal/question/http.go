package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/question-bank/internal/logging"
	httperrors "github.com/gokatarajesh/question-bank/pkg/http/errors"
)

const defaultMaxUploadBytes = 10 << 20

// HTTPHandlers exposes the question bank over REST.
type HTTPHandlers struct {
	svc            *Service
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewHTTPHandlers constructs question handlers. maxUploadBytes caps CSV uploads.
func NewHTTPHandlers(svc *Service, maxUploadBytes int64, logger zerolog.Logger) *HTTPHandlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &HTTPHandlers{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("component", "question_http").Logger(),
	}
}

// HandleList serves both GET /api/questions and GET /api/admin/questions;
// the admin route is wrapped by the auth gate.
func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	qs, err := h.svc.List(r.Context())
	if err != nil {
		h.internalError(w, r, err, "failed to load questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   fmt.Sprintf("Found %d questions", len(qs)),
		"questions": qs,
	})
}

// HandleCreate handles POST /api/admin/questions
func (h *HTTPHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var q Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	stored, err := h.svc.Create(r.Context(), q)
	if err != nil {
		h.internalError(w, r, err, "failed to create question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Question created",
		"question": stored,
	})
}

// HandleUpdate handles PUT /api/admin/questions/{id}
func (h *HTTPHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var q Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, q)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.internalError(w, r, err, "failed to update question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Question updated",
		"question": updated,
	})
}

// HandleDelete handles DELETE /api/admin/questions/{id}
func (h *HTTPHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.internalError(w, r, err, "failed to delete question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Question deleted",
	})
}

// HandleBulkDelete handles POST /api/admin/questions/bulk-delete
func (h *HTTPHandlers) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	removed, err := h.svc.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		h.internalError(w, r, err, "failed to delete questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Deleted %d questions", removed),
		"count":   removed,
	})
}

// HandleUploadCSV handles POST /api/admin/questions/upload-csv (multipart field "file").
func (h *HTTPHandlers) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeUploadTooLarge, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingFile, "No file uploaded", "file")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingFile, "No file selected", "file")
		return
	}

	count, err := h.svc.ImportCSV(r.Context(), file)
	if err != nil {
		if errors.Is(err, ErrInvalidCSV) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidCSV, "Error processing CSV: "+err.Error())
			return
		}
		h.internalError(w, r, err, "failed to import csv")
		return
	}

	h.logger.Info().Str("filename", header.Filename).Int("count", count).Msg("csv upload processed")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Uploaded %d questions", count),
		"count":   count,
	})
}

// HandleExportCSV handles GET /api/admin/questions/export-csv
func (h *HTTPHandlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(r.Context(), &buf); err != nil {
		h.internalError(w, r, err, "failed to export csv")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+ExportFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *HTTPHandlers) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger := logging.FromContext(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}
	logger.Error().Err(err).Msg(msg)
	httperrors.RespondInternalError(w, "Internal server error")
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "Invalid question id", "id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
