package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/internal/repository"
)

// FacetService maintains the denormalized facet table backing filter counts
// and category-filtered search.
type FacetService interface {
	// Rebuild recomputes every facet row from current link state, excluding
	// archived repositories. Idempotent; returns the new row count.
	Rebuild() (int, error)
}

type facetService struct {
	db        *gorm.DB
	facetRepo repository.FacetRepository
	batchSize int
	logger    *zap.Logger
}

func NewFacetService(db *gorm.DB, facetRepo repository.FacetRepository, batchSize int, logger *zap.Logger) FacetService {
	return &facetService{
		db:        db,
		facetRepo: facetRepo,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (s *facetService) Rebuild() (int, error) {
	rows, err := s.facetRepo.SourceRows()
	if err != nil {
		return 0, err
	}

	facets := make([]*model.Facet, 0, len(rows))
	for _, row := range rows {
		facets = append(facets, &model.Facet{
			RepositoryID: row.RepositoryID,
			RegistryName: row.RegistryName,
			CategoryID:   row.CategoryID,
			CategorySlug: row.CategorySlug,
			CategoryName: row.CategoryName,
			Language:     row.Language,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.facetRepo.DeleteAll(tx); err != nil {
			return err
		}
		for _, chunk := range lo.Chunk(facets, s.batchSize) {
			if err := s.facetRepo.CreateBatch(tx, chunk); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("facets rebuilt", zap.Int("rows", len(facets)))
	return len(facets), nil
}
