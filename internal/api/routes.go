package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Post("/users", s.handleCreateUser)

	r.Group(func(r chi.Router) {
		r.Use(s.userMiddleware)

		r.Get("/users/me", s.handleMe)
		r.Get("/cards", s.handleListCards)

		r.Get("/selection", s.handleSelection)
		r.Post("/selection", s.handleSelect)
		r.Delete("/selection", s.handleDeselect)
		r.Post("/selection/first/{n}", s.handleSelectFirstN)

		r.Get("/flashcards/levels", s.handleLevels)
		r.Post("/flashcards/levels/{level}/session", s.handleStartFlashcard)

		r.Get("/minigames/{type}", s.handleMiniGameOverview)
		r.Post("/minigames/{type}/session", s.handleStartMiniGame)

		r.Get("/session", s.handleCurrentSession)
		r.Delete("/session", s.handleExitSession)
		r.Post("/session/answer", s.handleAnswer)

		r.Get("/scores/me", s.handleMyScores)
		r.Get("/scores/rankings", s.handleRankings)

		r.Get("/settings", s.handleSettings)
		r.Put("/settings/timers", s.handleUpdateTimers)
		r.Post("/settings/schedule/weekday", s.handleToggleWeekday)
		r.Post("/settings/schedule/date", s.handleToggleDate)

		r.Get("/wrong-words", s.handleWrongWords)
		r.Delete("/wrong-words/{id}", s.handleDeleteWrongWord)

		r.Get("/rewards/books", s.handleBooks)
		r.Get("/rewards/books/{id}/stickers", s.handleBookStickers)
		r.Get("/rewards/mine", s.handleMyStickers)
	})
	return r
}
