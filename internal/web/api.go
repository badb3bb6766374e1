package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/common/validation"
	"club-signup/internal/form"
	"club-signup/internal/models"
)

const healthTimeout = 2 * time.Second

type checkRequest struct {
	Values  map[string]string `json:"values"`
	Touched []string          `json:"touched"`
}

type fieldStatus struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type checkResponse struct {
	Valid  bool                   `json:"valid"`
	Fields map[string]fieldStatus `json:"fields"`
}

type createResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	*apperrors.StandardError
	Errors []validation.ValidationError `json:"errors,omitempty"`
}

// handleValidate re-runs the rules for the posted values. Messages are only
// returned for touched fields.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readSchemaBody(w, r, validation.CheckRequestSchema)
	if !ok {
		return
	}

	var req checkRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, r, apperrors.NewInvalidRequestError(err.Error()), nil)
		return
	}

	f := h.newForm()
	for _, field := range models.Fields {
		_ = f.UpdateField(field, req.Values[field])
	}
	for _, field := range req.Touched {
		_ = f.Blur(field)
	}

	failing := f.Errors()
	resp := checkResponse{Valid: len(failing) == 0, Fields: make(map[string]fieldStatus, len(models.Fields))}
	for _, field := range models.Fields {
		_, invalid := failing[field]
		resp.Fields[field] = fieldStatus{Valid: !invalid, Message: f.VisibleError(field)}
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readSchemaBody(w, r, validation.ApplicationSchema)
	if !ok {
		return
	}

	var app models.Application
	if err := json.Unmarshal(body, &app); err != nil {
		h.writeError(w, r, apperrors.NewInvalidRequestError(err.Error()), nil)
		return
	}

	f := h.newForm()
	for _, field := range models.Fields {
		value, _ := app.Get(field)
		_ = f.UpdateField(field, value)
	}

	id, err := f.Submit(r.Context())
	if err != nil {
		var details []validation.ValidationError
		if errors.Is(err, form.ErrInvalid) {
			details = h.rules.Validate(f.Values()).Errors()
		}
		h.writeError(w, r, err, details)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, createResponse{ID: id, Status: form.Submitted.String()})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", map[string]interface{}{"error": err})
		h.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// readSchemaBody reads the request body and checks it against schema. It
// writes a 400 response and returns false when the body is unusable.
func (h *Handler) readSchemaBody(w http.ResponseWriter, r *http.Request, schema *validation.Schema) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, apperrors.NewInvalidRequestError("request body too large or unreadable"), nil)
		return nil, false
	}

	result, err := schema.ValidateJSON(body)
	if err != nil {
		h.writeError(w, r, apperrors.NewInvalidRequestError("request body is not valid JSON"), nil)
		return nil, false
	}
	if !result.Valid {
		h.writeError(w, r, apperrors.NewInvalidRequestError("request body does not match schema"), result.Errors)
		return nil, false
	}
	return body, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, details []validation.ValidationError) {
	stdErr := apperrors.Normalize(err)
	status := apperrors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", map[string]interface{}{
			"requestId": requestID(r),
			"errorCode": string(stdErr.Code),
			"category":  apperrors.GetErrorCategory(stdErr.Code),
			"error":     err,
		})
	}
	h.writeJSON(w, r, status, errorResponse{StandardError: stdErr, Errors: details})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", map[string]interface{}{
			"requestId": requestID(r),
			"error":     err,
		})
	}
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
