package handler

import (
	"github.com/gin-gonic/gin"

	"awesome-index/internal/dto"
	"awesome-index/internal/service"
	"awesome-index/pkg/responses"
	"awesome-index/pkg/utils"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search runs a filtered, ranked, paginated repository query.
func (h *SearchHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "invalid query parameters", utils.FormatValidationError(err))
		return
	}

	result, err := h.searchService.Search(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, result)
}

// FilterOptions lists the selectable filter values with counts.
func (h *SearchHandler) FilterOptions(c *gin.Context) {
	options, err := h.searchService.FilterOptions()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, options)
}

// ListRegistries returns metadata for every indexed source registry.
func (h *SearchHandler) ListRegistries(c *gin.Context) {
	registries, err := h.searchService.ListRegistries()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, registries)
}
