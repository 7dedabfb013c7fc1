package services

import (
	"context"

	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/importer"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

// CatalogService exposes the card catalog and its spreadsheet import
type CatalogService interface {
	ListCards(ctx context.Context) ([]models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	ImportFile(ctx context.Context, path string) (*importer.Result, error)
}

type catalogService struct {
	cardRepo repository.CardRepository
	importer *importer.Importer
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(cardRepo repository.CardRepository, importConfig importer.Config) CatalogService {
	return &catalogService{
		cardRepo: cardRepo,
		importer: importer.New(cardRepo, importConfig),
	}
}

func (s *catalogService) ListCards(ctx context.Context) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards")

	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *catalogService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *catalogService) ImportFile(ctx context.Context, path string) (*importer.Result, error) {
	log := logger.FromContext(ctx).WithField("file", path)
	log.Info("importing cards")

	res, err := s.importer.ImportFile(ctx, path)
	if err != nil {
		log.Error("card import failed: %v", err)
		return res, errors.NewInternalError(err)
	}
	return res, nil
}
