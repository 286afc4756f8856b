package utils

import "strings"

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE metacharacters so user input always matches
// literally. Wildcards are never passed through from callers.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern wraps an escaped term for a substring LIKE match.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
