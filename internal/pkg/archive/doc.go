package archive

import (
	"strings"
	"time"
)

// Metadata describes one source registry inside the snapshot.
type Metadata struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	LastUpdated      int64  `json:"last_updated"` // unix seconds, 0 when unknown
	SourceRepository string `json:"source_repository"`
}

// RepoInfo is the optional repository reference carried by a list item.
type RepoInfo struct {
	Owner      string  `json:"owner"`
	Repo       string  `json:"repo"`
	Stars      int     `json:"stars"`
	Language   *string `json:"language,omitempty"`
	LastCommit int64   `json:"last_commit,omitempty"` // unix seconds, 0 when unknown
	Archived   bool    `json:"archived"`
}

// Item is one entry of a category section. Items may nest arbitrarily via
// Children; only items carrying a RepoInfo become repositories.
type Item struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Children    []Item    `json:"children,omitempty"`
	RepoInfo    *RepoInfo `json:"repo_info,omitempty"`
}

// Section groups items under one raw category label.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// RegistryDoc is one per-registry document extracted from the snapshot.
type RegistryDoc struct {
	Metadata Metadata  `json:"metadata"`
	Items    []Section `json:"items"`
}

// LastUpdatedTime converts the metadata timestamp, nil when absent.
func (m *Metadata) LastUpdatedTime() *time.Time {
	if m.LastUpdated <= 0 {
		return nil
	}
	t := time.Unix(m.LastUpdated, 0).UTC()
	return &t
}

// LastCommitTime converts the repo timestamp, nil when absent.
func (r *RepoInfo) LastCommitTime() *time.Time {
	if r.LastCommit <= 0 {
		return nil
	}
	t := time.Unix(r.LastCommit, 0).UTC()
	return &t
}

// RegistryKey derives the normalized registry name from the source
// identifier: the owner prefix and the conventional "awesome-" list prefix
// are stripped ("hub/awesome-go" -> "go").
func (m *Metadata) RegistryKey() string {
	name := m.SourceRepository
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimPrefix(name, "awesome-")
	return strings.ToLower(strings.TrimSpace(name))
}
