package model

import (
	"strings"
)

// Slugify derives a URL-safe slug from a display name: lowercased with
// spaces replaced by hyphens. Uniqueness is enforced by the database.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
