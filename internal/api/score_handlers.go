package api

import (
	"net/http"
)

func (s *Server) handleMyScores(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	stats, err := s.ScoreService.PersonalStats(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	rankings, err := s.ScoreService.Rankings(r.Context(), user.ID, r.URL.Query().Get("game"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rankings)
}
