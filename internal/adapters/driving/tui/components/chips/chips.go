// Package chips provides the category filter row for the TUI.
package chips

import (
	"strings"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// Row renders the category filters as a horizontal chip row. The first
// chip is always the all pseudo-category.
type Row struct {
	categories []string
	selected   int
	styles     *styles.Styles
}

// NewRow creates a category chip row.
func NewRow(s *styles.Styles) *Row {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Row{
		categories: []string{domain.CategoryAll},
		styles:     s,
	}
}

// SetCategories replaces the category set, keeping the all chip first.
// The current selection is preserved when its category survives.
func (r *Row) SetCategories(categories []string) {
	current := r.Selected()

	r.categories = append([]string{domain.CategoryAll}, categories...)
	r.selected = 0
	for i, c := range r.categories {
		if c == current {
			r.selected = i
			break
		}
	}
}

// Selected returns the active category.
func (r *Row) Selected() string {
	if r.selected < 0 || r.selected >= len(r.categories) {
		return domain.CategoryAll
	}
	return r.categories[r.selected]
}

// Select activates the chip for category if present.
func (r *Row) Select(category string) {
	for i, c := range r.categories {
		if c == category {
			r.selected = i
			return
		}
	}
}

// Next cycles the selection forward, wrapping around.
func (r *Row) Next() string {
	r.selected = (r.selected + 1) % len(r.categories)
	return r.Selected()
}

// Prev cycles the selection backward, wrapping around.
func (r *Row) Prev() string {
	r.selected = (r.selected - 1 + len(r.categories)) % len(r.categories)
	return r.Selected()
}

// Count returns the number of chips, including the all chip.
func (r *Row) Count() int {
	return len(r.categories)
}

// View renders the chip row.
func (r *Row) View() string {
	parts := make([]string, 0, len(r.categories))
	for i, c := range r.categories {
		if i == r.selected {
			parts = append(parts, r.styles.ChipActive.Render(c))
		} else {
			parts = append(parts, r.styles.Chip.Render(c))
		}
	}
	return strings.Join(parts, " ")
}
