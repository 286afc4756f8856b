package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"awesome-index/internal/api/handler"
	"awesome-index/internal/api/middleware"
	"awesome-index/internal/pkg/archive"
	"awesome-index/internal/pkg/config"
	"awesome-index/internal/repository"
	"awesome-index/internal/service"
)

// Services bundles the wired service layer so the scheduler and the HTTP
// surface share the same instances.
type Services struct {
	Index  service.IndexService
	Facet  service.FacetService
	Sync   service.SyncService
	Search service.SearchService
}

// BuildServices wires repositories and services from the database handle.
func BuildServices(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *Services {
	repoRepo := repository.NewRepositoryRepository(db)
	registryRepo := repository.NewRegistryRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	facetRepo := repository.NewFacetRepository(db)
	runRepo := repository.NewSyncRunRepository(db)
	logRepo := repository.NewSyncLogRepository(db)
	searchRepo := repository.NewSearchRepository(db)

	indexService := service.NewIndexService(db, repoRepo, registryRepo, categoryRepo, cfg.Sync.BatchSize, logger)
	facetService := service.NewFacetService(db, facetRepo, cfg.Sync.BatchSize, logger)
	fetcher := archive.NewFetcher(cfg.Sync.ArchiveURL, cfg.Sync.GetFetchTimeout(), cfg.Sync.FetchRetries, logger)
	syncService := service.NewSyncService(runRepo, logRepo, indexService, facetService, fetcher,
		service.SyncOptions{
			FetchTimeout:  cfg.Sync.GetFetchTimeout(),
			FlushEvery:    cfg.Sync.FlushEvery,
			RebuildFacets: cfg.Sync.RebuildFacets,
		}, logger)
	searchService := service.NewSearchService(searchRepo, registryRepo, categoryRepo, facetRepo,
		service.SearchOptions{
			RawFetchCap:     cfg.Search.RawFetchCap,
			DefaultPageSize: cfg.Search.DefaultPageSize,
			MaxPageSize:     cfg.Search.MaxPageSize,
			FilterCacheTTL:  cfg.Search.GetFilterCacheTTL(),
		}, logger)

	return &Services{
		Index:  indexService,
		Facet:  facetService,
		Sync:   syncService,
		Search: searchService,
	}
}

// Setup builds the gin engine with all routes registered.
func Setup(cfg *config.Config, services *Services) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	searchHandler := handler.NewSearchHandler(services.Search)
	syncHandler := handler.NewSyncHandler(services.Sync)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/search", searchHandler.Search)
		v1.GET("/search/filters", searchHandler.FilterOptions)
		v1.GET("/registries", searchHandler.ListRegistries)

		// Admin surface, token required.
		syncGroup := v1.Group("/sync")
		syncGroup.Use(middleware.AuthMiddleware())
		{
			syncGroup.POST("/trigger", syncHandler.Trigger)
			syncGroup.POST("/stop", syncHandler.Stop)
			syncGroup.GET("/status", syncHandler.Status)
			syncGroup.GET("/history", syncHandler.History)
		}
	}

	return r
}
