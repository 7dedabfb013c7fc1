package api

import (
	"database/sql"

	"github.com/vytor/nihaocards/internal/services"
)

// Server holds the services the HTTP handlers call.
type Server struct {
	DB               *sql.DB
	UserService      services.UserService
	CatalogService   services.CatalogService
	SelectionService services.SelectionService
	SettingsService  services.SettingsService
	SessionService   services.SessionService
	ScoreService     services.ScoreService
	WrongWordService services.WrongWordService
	RewardService    services.RewardService
}
