package server

import (
	"encoding/json"
	"net/http"

	"github.com/BartekS5/uilm/pkg/logger"
)

// Response is the envelope for successful API responses.
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for failed API responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		logger.Errorf("writing response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any, meta any) {
	writeJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details []string) {
	writeJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message, nil)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "not_found", message, nil)
}

func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// writeValidationError reports every validation problem, in order, with
// the joined message the CLI prints.
func writeValidationError(w http.ResponseWriter, message string, problems []string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message, problems)
}
