package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleWrongWords(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	words, err := s.WrongWordService.List(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}

func (s *Server) handleDeleteWrongWord(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := s.WrongWordService.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
