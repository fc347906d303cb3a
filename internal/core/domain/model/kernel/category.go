package kernel

import "strings"

// DefaultCategory is used for menu and order items that have no category.
const DefaultCategory = "Other"

// CategoryOrDefault trims s and falls back to DefaultCategory when it is blank.
func CategoryOrDefault(s string) string {
	if c := strings.TrimSpace(s); c != "" {
		return c
	}
	return DefaultCategory
}
