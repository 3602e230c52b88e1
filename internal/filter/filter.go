// Package filter narrows fetched customer records by client-side search text
package filter

import (
	"strings"

	"github.com/umalmyha/customers-viewer/internal/model"
)

// Visible returns records whose name contains search case-insensitively, keeping original order.
// Records are returned as is when search is empty.
func Visible(records []model.Customer, search string) []model.Customer {
	if search == "" {
		return records
	}

	needle := strings.ToLower(search)
	visible := make([]model.Customer, 0, len(records))
	for _, r := range records {
		if Matches(r, needle) {
			visible = append(visible, r)
		}
	}
	return visible
}

// Matches reports whether customer name contains lower-cased needle
func Matches(c model.Customer, needle string) bool {
	return strings.Contains(strings.ToLower(c.Name), needle)
}
