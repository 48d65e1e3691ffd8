package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/BartekS5/uilm/internal/state"
	"github.com/BartekS5/uilm/pkg/flatten"
	"github.com/BartekS5/uilm/pkg/logger"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/processor"
)

// FormatRequest carries a document to pretty print.
type FormatRequest struct {
	JSON string `json:"json"`
}

type FormatResponse struct {
	JSON string `json:"json"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"}, nil)
}

// decodeBody reads a JSON body bounded by the server's size limit. It writes
// the error response itself and reports whether decoding succeeded.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
			return false
		}
		writeBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

func (s *Server) decodeConfiguration(w http.ResponseWriter, r *http.Request) (models.Configuration, bool) {
	var cfg models.Configuration
	if !s.decodeBody(w, r, &cfg) {
		return models.Configuration{}, false
	}
	return cfg.Trimmed(), true
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	writeSuccess(w, processor.Validate(cfg), nil)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}

	result := processor.Validate(cfg)
	if !result.Valid {
		writeValidationError(w, strings.Join(result.Errors, ", "), result.Errors)
		return
	}

	records, err := s.processor.Process(cfg)
	if err != nil {
		logger.Errorf("generate: %v", err)
		writeInternalError(w, "Conversion failed")
		return
	}

	writeSuccess(w, records, processor.Summarize(records))
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	formatted, err := flatten.Format(req.JSON)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeSuccess(w, FormatResponse{JSON: formatted}, nil)
}

func (s *Server) handleLoadState(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.Load(r.Context())
	if errors.Is(err, state.ErrNotFound) {
		writeNotFound(w, "No saved state")
		return
	}
	if err != nil {
		logger.Errorf("loading state: %v", err)
		writeInternalError(w, "Failed to load state")
		return
	}
	writeSuccess(w, cfg, nil)
}

func (s *Server) handleSaveState(w http.ResponseWriter, r *http.Request) {
	var cfg models.Configuration
	if !s.decodeBody(w, r, &cfg) {
		return
	}
	if err := s.store.Save(r.Context(), cfg); err != nil {
		logger.Errorf("saving state: %v", err)
		writeInternalError(w, "Failed to save state")
		return
	}
	writeSuccess(w, cfg, nil)
}

func (s *Server) handleClearState(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		logger.Errorf("clearing state: %v", err)
		writeInternalError(w, "Failed to clear state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
