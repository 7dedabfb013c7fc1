package api

import (
	"net/http"
)

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.RewardService.Books(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, books)
}

func (s *Server) handleBookStickers(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	bookID, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stickers, err := s.RewardService.OpenBook(r.Context(), user.ID, bookID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stickers)
}

func (s *Server) handleMyStickers(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	ids, err := s.RewardService.MyStickerIDs(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]int64{"sticker_ids": ids})
}
