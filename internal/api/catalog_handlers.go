package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.CatalogService.ListCards(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

type selectionRequest struct {
	CardIDs []int64 `json:"card_ids"`
}

type selectionResponse struct {
	CardIDs []int64 `json:"card_ids"`
	Changed int     `json:"changed"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	ids, err := s.SelectionService.SelectedIDs(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, selectionResponse{CardIDs: ids})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	s.changeSelection(w, r, s.SelectionService.SelectMany)
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	s.changeSelection(w, r, s.SelectionService.DeselectMany)
}

func (s *Server) changeSelection(w http.ResponseWriter, r *http.Request, apply func(context.Context, string, []int64) (int, error)) {
	user := userFromContext(r.Context())

	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if len(req.CardIDs) == 0 {
		handleError(w, r, errors.NewValidationError("card_ids", "cannot be empty"))
		return
	}

	changed, err := apply(r.Context(), user.ID, req.CardIDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.writeSelection(w, r, user.ID, changed)
}

func (s *Server) handleSelectFirstN(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	raw := chi.URLParam(r, "n")
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("invalid count: %s", raw)
		handleError(w, r, errors.NewBadRequestError("invalid n: "+raw))
		return
	}

	changed, err := s.SelectionService.SelectFirstN(r.Context(), user.ID, n)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.writeSelection(w, r, user.ID, changed)
}

func (s *Server) writeSelection(w http.ResponseWriter, r *http.Request, userID string, changed int) {
	ids, err := s.SelectionService.SelectedIDs(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, selectionResponse{CardIDs: ids, Changed: changed})
}
