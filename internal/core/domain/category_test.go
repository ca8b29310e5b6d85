package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctCategoriesFirstSeenOrder(t *testing.T) {
	docs := []Document{
		{Category: "wiki"},
		{Category: "docs"},
		{Category: "wiki"},
	}

	assert.Equal(t, []string{"wiki", "docs"}, DistinctCategories(docs))
}

func TestDistinctCategoriesDefaultsEmpty(t *testing.T) {
	docs := []Document{{Category: ""}, {Category: "wiki"}}

	assert.Equal(t, []string{"general", "wiki"}, DistinctCategories(docs))
}

func TestDistinctCategoriesEmptyCollection(t *testing.T) {
	assert.Empty(t, DistinctCategories(nil))
}

func TestCategoryBadgeIsTotal(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{category: "wiki", want: "◆"},
		{category: "support", want: "♦"},
		{category: "never-seen-before", want: CategoryBadge(DefaultCategory)},
		{category: "", want: CategoryBadge(DefaultCategory)},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryBadge(tt.category))
			assert.NotEmpty(t, CategoryBadge(tt.category))
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	docs := []Document{
		{ID: "1", Category: "wiki"},
		{ID: "2", Category: "docs"},
		{ID: "3", Category: "wiki"},
	}

	filtered := FilterByCategory(docs, "wiki")
	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)

	assert.Equal(t, docs, FilterByCategory(docs, CategoryAll))
	assert.Empty(t, FilterByCategory(docs, "missing"))
}
