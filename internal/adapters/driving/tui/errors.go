package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingBrowseService is returned when the browse service is not provided.
var ErrMissingBrowseService = errors.New("tui: browse service is required")

// ErrMissingStatsService is returned when the stats service is not provided.
var ErrMissingStatsService = errors.New("tui: stats service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("tui: ingest service is required")
