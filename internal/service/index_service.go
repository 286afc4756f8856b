package service

import (
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/internal/pkg/archive"
	"awesome-index/internal/pkg/category"
	"awesome-index/internal/repository"
)

// IndexService projects one registry document into the relational model.
type IndexService interface {
	// IndexRegistry replaces the stored projection of the named registry
	// wholesale and returns the number of distinct repositories indexed.
	IndexRegistry(name string, doc *archive.RegistryDoc) (int, error)
}

type indexService struct {
	db           *gorm.DB
	repoRepo     repository.RepositoryRepository
	registryRepo repository.RegistryRepository
	categoryRepo repository.CategoryRepository
	batchSize    int
	logger       *zap.Logger
}

func NewIndexService(
	db *gorm.DB,
	repoRepo repository.RepositoryRepository,
	registryRepo repository.RegistryRepository,
	categoryRepo repository.CategoryRepository,
	batchSize int,
	logger *zap.Logger,
) IndexService {
	return &indexService{
		db:           db,
		repoRepo:     repoRepo,
		registryRepo: registryRepo,
		categoryRepo: categoryRepo,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// flatRepo is one deduplicated repository with every category label it was
// listed under anywhere in the document.
type flatRepo struct {
	info         archive.RepoInfo
	displayTitle string
	description  *string
	categories   map[string]category.Result // keyed by slug
}

func (s *indexService) IndexRegistry(name string, doc *archive.RegistryDoc) (int, error) {
	repos, order := s.flatten(doc)

	// Resolve categories up front; get-or-create is idempotent so doing it
	// outside the replacement transactions is safe.
	categoryIDs := make(map[string]int64)
	for _, key := range order {
		for slug, res := range repos[key].categories {
			if _, ok := categoryIDs[slug]; ok {
				continue
			}
			cat, err := s.categoryRepo.GetOrCreate(slug, res.Name)
			if err != nil {
				return 0, err
			}
			categoryIDs[slug] = cat.ID
		}
	}

	starsTotal := 0
	for _, key := range order {
		starsTotal += repos[key].info.Stars
	}

	now := time.Now()
	registry := &model.Registry{
		Name:             name,
		Title:            doc.Metadata.Title,
		SourceRepository: doc.Metadata.SourceRepository,
		LastUpdated:      doc.Metadata.LastUpdatedTime(),
		ItemCount:        len(order),
		StarsTotal:       starsTotal,
		SyncedAt:         &now,
	}
	if doc.Metadata.Description != "" {
		registry.Description = &doc.Metadata.Description
	}

	// Wholesale replacement: the old projection goes away in one
	// transaction, then the new rows land in bounded batches.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.registryRepo.DeleteLinksByRegistry(tx, name); err != nil {
			return err
		}
		if err := s.categoryRepo.DeleteLinksByRegistry(tx, name); err != nil {
			return err
		}
		if err := s.registryRepo.DeleteByName(tx, name); err != nil {
			return err
		}
		return s.registryRepo.Create(tx, registry)
	})
	if err != nil {
		return 0, err
	}

	rows := make([]*model.Repository, 0, len(order))
	for _, key := range order {
		rows = append(rows, toRepositoryRow(repos[key]))
	}
	for _, chunk := range lo.Chunk(rows, s.batchSize) {
		chunk := chunk
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.repoRepo.InsertIgnore(tx, chunk)
		})
		if err != nil {
			return 0, err
		}
	}

	ids, err := s.repoRepo.MapIDs(rows)
	if err != nil {
		return 0, err
	}

	var (
		registryLinks []*model.RegistryRepo
		categoryLinks []*model.CategoryLink
	)
	for _, key := range order {
		repo := repos[key]
		id, ok := ids[key]
		if !ok {
			// Should not happen after insert-ignore; keep going rather
			// than failing the whole registry.
			s.logger.Warn("repository id missing after insert",
				zap.String("registry", name), zap.String("repo", key))
			continue
		}
		registryLinks = append(registryLinks, &model.RegistryRepo{
			RegistryName: name,
			RepositoryID: id,
			DisplayTitle: repo.displayTitle,
		})
		for slug := range repo.categories {
			categoryLinks = append(categoryLinks, &model.CategoryLink{
				RegistryName: name,
				RepositoryID: id,
				CategoryID:   categoryIDs[slug],
			})
		}
	}

	for _, chunk := range lo.Chunk(registryLinks, s.batchSize) {
		chunk := chunk
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.registryRepo.CreateLinks(tx, chunk)
		})
		if err != nil {
			return 0, err
		}
	}
	for _, chunk := range lo.Chunk(categoryLinks, s.batchSize) {
		chunk := chunk
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.categoryRepo.CreateLinks(tx, chunk)
		})
		if err != nil {
			return 0, err
		}
	}

	s.logger.Info("registry indexed",
		zap.String("registry", name),
		zap.Int("repositories", len(order)),
		zap.Int("category_links", len(categoryLinks)))
	return len(order), nil
}

// flatten walks every section (recursing into item children) and groups items
// by (owner, name), merging category labels. Items without repository info are
// skipped. Returns the grouped map plus first-seen key order.
func (s *indexService) flatten(doc *archive.RegistryDoc) (map[string]*flatRepo, []string) {
	repos := make(map[string]*flatRepo)
	var order []string

	var walk func(items []archive.Item, cat *category.Result)
	walk = func(items []archive.Item, cat *category.Result) {
		for _, item := range items {
			if item.RepoInfo != nil {
				key := repository.RepoKey(item.RepoInfo.Owner, item.RepoInfo.Repo)
				repo, ok := repos[key]
				if !ok {
					repo = &flatRepo{
						info:         *item.RepoInfo,
						displayTitle: item.Title,
						description:  item.Description,
						categories:   make(map[string]category.Result),
					}
					repos[key] = repo
					order = append(order, key)
				}
				if cat != nil {
					repo.categories[cat.Slug] = *cat
				}
			}
			if len(item.Children) > 0 {
				walk(item.Children, cat)
			}
		}
	}

	for _, section := range doc.Items {
		res, ok := category.Normalize(section.Title)
		if ok {
			walk(section.Items, &res)
		} else {
			walk(section.Items, nil)
		}
	}
	return repos, order
}

func toRepositoryRow(repo *flatRepo) *model.Repository {
	row := &model.Repository{
		Owner:      repo.info.Owner,
		Name:       repo.info.Repo,
		Stars:      repo.info.Stars,
		Language:   repo.info.Language,
		LastCommit: repo.info.LastCommitTime(),
		Archived:   repo.info.Archived,
	}
	if repo.description != nil {
		row.Description = repo.description
	}
	return row
}
