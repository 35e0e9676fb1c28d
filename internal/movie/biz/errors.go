package biz

import "errors"

var (
	// ErrMissingAPIKey the catalog credential is not configured
	ErrMissingAPIKey = errors.New("catalog api key not configured")

	// ErrEmptyCatalog the catalog returned no genres to pick from
	ErrEmptyCatalog = errors.New("catalog returned no genres")
)

// MissingAPIKeyMessage is surfaced to clients when ErrMissingAPIKey occurs
const MissingAPIKeyMessage = "TMDB_API_KEY not configured in environment"
