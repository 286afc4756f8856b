package constants

import "fmt"

// SyncRunStatus values for an ingestion run
const (
	SyncRunStatusRunning   = "running"
	SyncRunStatusCompleted = "completed"
	SyncRunStatusFailed    = "failed"
)

// Trigger source of an ingestion run
const (
	SyncTriggerManual    = "manual"
	SyncTriggerScheduled = "scheduled"
)

// Per-registry outcome recorded in the sync log
const (
	SyncLogStatusSuccess = "success"
	SyncLogStatusError   = "error"
)

// StopMessage is the fixed message written when a run is stopped by hand.
const StopMessage = "manually stopped"

// Sort keys accepted by the search endpoint
const (
	SortByName    = "name"
	SortByStars   = "stars"
	SortByUpdated = "updated"
	SortByQuality = "quality"
)

var validSortKeys = map[string]bool{
	SortByName:    true,
	SortByStars:   true,
	SortByUpdated: true,
	SortByQuality: true,
}

// NormalizeSortKey falls back to stars ordering for unknown keys.
func NormalizeSortKey(key string) string {
	if validSortKeys[key] {
		return key
	}
	return SortByStars
}

// JWT related
const (
	JWTContextKey = "jwt_user"
	JWTTypeAccess = "access"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)

// FormatSyncSummary builds the per-run result message.
func FormatSyncSummary(success, failed int) string {
	return fmt.Sprintf("sync finished: %d succeeded, %d failed", success, failed)
}
