package model

const (
	CategoryTableName     = "categories"
	CategoryLinkTableName = "category_links"
)

// Category is a canonical (slug, name) pair shared globally across
// registries after normalization.
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Category) TableName() string {
	return CategoryTableName
}

// CategoryLink expresses membership of a repository in a category within one
// registry. A repository may hold several links per registry.
type CategoryLink struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistryName string `gorm:"size:100;not null;index:idx_link_registry" json:"registry_name"`
	RepositoryID int64  `gorm:"not null;index:idx_link_repo" json:"repository_id"`
	CategoryID   int64  `gorm:"not null;index:idx_link_category" json:"category_id"`
}

func (CategoryLink) TableName() string {
	return CategoryLinkTableName
}
