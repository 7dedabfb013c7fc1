package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/nihaocards/internal/services"
)

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	levels, err := s.SettingsService.LevelOverview(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, levels)
}

func (s *Server) handleStartFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	view, err := s.SessionService.StartFlashcard(r.Context(), user.ID, chi.URLParam(r, "level"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleMiniGameOverview(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	overview, err := s.SessionService.MiniGameOverview(r.Context(), user.ID, chi.URLParam(r, "type"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

type startMiniGameRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleStartMiniGame(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req startMiniGameRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.SessionService.StartMiniGame(r.Context(), user.ID, chi.URLParam(r, "type"), req.Mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	view, err := s.SessionService.Current(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExitSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := s.SessionService.Exit(r.Context(), user.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req services.Answer
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.SessionService.Answer(r.Context(), user.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
