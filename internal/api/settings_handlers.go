package api

import (
	"net/http"

	"github.com/vytor/nihaocards/internal/services"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	settings, err := s.SettingsService.Get(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) handleUpdateTimers(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req services.Timers
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := s.SettingsService.UpdateTimers(r.Context(), user.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

type toggleWeekdayRequest struct {
	Day string `json:"day"`
}

func (s *Server) handleToggleWeekday(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req toggleWeekdayRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := s.SettingsService.ToggleWeekday(r.Context(), user.ID, req.Day)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

type toggleDateRequest struct {
	Date int `json:"date"`
}

func (s *Server) handleToggleDate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req toggleDateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := s.SettingsService.ToggleDate(r.Context(), user.ID, req.Date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}
