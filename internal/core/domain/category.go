package domain

// CategoryAll is the pseudo-category meaning "no filter".
const CategoryAll = "all"

// DistinctCategories returns the distinct category values present in docs,
// each listed once, in first-seen order. Recomputed on every load.
func DistinctCategories(docs []Document) []string {
	seen := make(map[string]bool, len(docs))
	var categories []string
	for i := range docs {
		cat := docs[i].Category
		if cat == "" {
			cat = DefaultCategory
		}
		if !seen[cat] {
			seen[cat] = true
			categories = append(categories, cat)
		}
	}
	return categories
}

// categoryBadges maps well-known categories to their display badge.
var categoryBadges = map[string]string{
	"general": "●",
	"wiki":    "◆",
	"docs":    "▣",
	"support": "♦",
	"policy":  "▲",
}

// CategoryBadge returns the display badge for a category. The mapping is
// total over the open label set: unknown categories get the general badge.
func CategoryBadge(category string) string {
	if badge, ok := categoryBadges[category]; ok {
		return badge
	}
	return categoryBadges[DefaultCategory]
}

// FilterByCategory returns the subset of docs with the given category,
// preserving relative order. CategoryAll returns docs unchanged.
func FilterByCategory(docs []Document, category string) []Document {
	if category == CategoryAll || category == "" {
		return docs
	}
	filtered := make([]Document, 0, len(docs))
	for i := range docs {
		if docs[i].Category == category {
			filtered = append(filtered, docs[i])
		}
	}
	return filtered
}
