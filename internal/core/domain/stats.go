package domain

import "time"

// RecentSearch is one row of the recent-search history panel.
type RecentSearch struct {
	Query        string
	ResultsCount int
	CreatedAt    time.Time
}

// PopularDocument is one row of the most-viewed aggregate.
type PopularDocument struct {
	Title     string
	ViewCount int
}

// Stats is the combined usage analytics snapshot. Each field is filled
// independently; a failed branch leaves its zero value so the panel can
// render whatever subset succeeded.
type Stats struct {
	// TotalDocuments is the document count across all users.
	TotalDocuments int

	// TotalSearches is the search count for the current identity.
	TotalSearches int

	// RecentSearches holds the newest searches first, at most five.
	RecentSearches []RecentSearch

	// PopularDocuments holds the five most-viewed documents.
	PopularDocuments []PopularDocument
}
