package dto

import "time"

// SearchQuery binds the search endpoint's query string.
type SearchQuery struct {
	Q        string `form:"q" binding:"omitempty,max=200"`
	Registry string `form:"registry" binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=100"`
	Language string `form:"language" binding:"omitempty,max=50"`
	Archived *bool  `form:"archived"`
	MinStars int    `form:"min_stars" binding:"omitempty,min=0"`
	Sort     string `form:"sort" binding:"omitempty,oneof=name stars updated quality"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

// RegistryMembership is one registry listing a result repository.
type RegistryMembership struct {
	Registry     string `json:"registry"`
	DisplayTitle string `json:"display_title"`
}

// CategoryRef is one category attached to a result repository.
type CategoryRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SearchResultItem is one aggregated repository in a search page.
type SearchResultItem struct {
	ID          int64                `json:"id"`
	Owner       string               `json:"owner"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Stars       int                  `json:"stars"`
	Language    *string              `json:"language"`
	LastCommit  *time.Time           `json:"last_commit"`
	Archived    bool                 `json:"archived"`
	Quality     float64              `json:"quality"`
	Registries  []RegistryMembership `json:"registries"`
	Categories  []CategoryRef        `json:"categories"`
}

// SearchResponse is one page of aggregated results.
type SearchResponse struct {
	Data       []SearchResultItem `json:"data"`
	Total      int64              `json:"total"`
	HasMore    bool               `json:"hasMore"`
	NextCursor *int               `json:"nextCursor"`
}

// FilterOption is one selectable filter value with its repository count.
type FilterOption struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// FilterOptionsResponse lists the facet-backed filter values.
type FilterOptionsResponse struct {
	Registries []FilterOption `json:"registries"`
	Categories []FilterOption `json:"categories"`
	Languages  []FilterOption `json:"languages"`
}

// RegistryResponse is one source registry's metadata.
type RegistryResponse struct {
	Name             string     `json:"name"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	SourceRepository string     `json:"source_repository"`
	LastUpdated      *time.Time `json:"last_updated"`
	ItemCount        int        `json:"item_count"`
	StarsTotal       int        `json:"stars_total"`
	SyncedAt         *time.Time `json:"synced_at"`
}

// RegistriesResponse is the registry list envelope payload.
type RegistriesResponse struct {
	Registries []RegistryResponse `json:"registries"`
	Total      int                `json:"total"`
}
