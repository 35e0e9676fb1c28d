package tmdb

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey     = errors.New("tmdb: api key not configured")
	ErrMalformedResponse = errors.New("tmdb: malformed response")
)

// APIError is a non-2xx answer from TMDB
type APIError struct {
	StatusCode    int
	StatusMessage string
}

func (e *APIError) Error() string {
	if e.StatusMessage != "" {
		return fmt.Sprintf("tmdb: http %d: %s", e.StatusCode, e.StatusMessage)
	}
	return fmt.Sprintf("tmdb: http %d", e.StatusCode)
}
