package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Methods())
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}

	resp, err := s.svc.Plan(r.Context(), programID)
	if err != nil {
		s.writeError(w, "loading plan", programID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decodeProgression(w, r)
	if !ok {
		return
	}

	resp, err := s.svc.Preview(r.Context(), programID, req)
	if err != nil {
		s.writeError(w, "previewing progression", programID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	programID, ok := programIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decodeProgression(w, r)
	if !ok {
		return
	}

	user := userInfoFromContext(r)
	result, err := s.svc.Generate(r.Context(), programID, req)
	if err != nil {
		s.writeError(w, "generating progression", programID, err)
		return
	}

	s.log.Info("progression generated",
		"program_id", programID,
		"status", result.Status,
		"sessions", result.SessionsCreated,
		"user", user.Login,
	)
	writeJSON(w, http.StatusOK, result)
}

// writeError maps service errors onto statuses. Only unexpected failures
// are logged.
func (s *Server) writeError(w http.ResponseWriter, op string, programID int64, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, api.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrProgramNotFound):
		status = http.StatusNotFound
	default:
		s.log.Error(op, "program_id", programID, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeProgression(w http.ResponseWriter, r *http.Request) (api.ProgressionRequest, bool) {
	var req api.ProgressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return req, false
	}
	return req, true
}

func programIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return 0, false
	}
	return id, true
}

// writeJSON sends v with status. The header is already out when encoding
// runs, so an encode or write failure cannot change the response and is
// dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
