package model

const FacetTableName = "facets"

// Facet is one denormalized (repository, registry, category, language) row
// used for fast cross-filter counts. Purely derived: fully recomputed by the
// facet rebuild, never patched incrementally, and never contains archived
// repositories.
type Facet struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	RepositoryID int64   `gorm:"not null;index" json:"repository_id"`
	RegistryName string  `gorm:"size:100;not null;index" json:"registry_name"`
	CategoryID   int64   `gorm:"not null;index" json:"category_id"`
	CategorySlug string  `gorm:"size:100;not null;index" json:"category_slug"`
	CategoryName string  `gorm:"size:100;not null" json:"category_name"`
	Language     *string `gorm:"size:50;index" json:"language"`
}

func (Facet) TableName() string {
	return FacetTableName
}
