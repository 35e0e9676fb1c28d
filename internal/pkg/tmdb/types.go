package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Genre is one entry of /genre/movie/list
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is one entry of a discover results page
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate string
	PosterPath  string
	GenreIDs    []int
}

// DiscoverPage is one page of /discover/movie.
// TotalPages is 0 when the provider reported a missing or non-numeric value.
type DiscoverPage struct {
	Page       int
	TotalPages int
	Results    []Movie
}

// CrewMember is one entry of the crew list in /movie/{id}/credits
type CrewMember struct {
	Name       string
	Job        string
	Department string
}

// DiscoverQuery holds the filters of a /discover/movie request.
// Zero values are omitted from the query string, except the date and
// vote-average bounds which are always sent.
type DiscoverQuery struct {
	GenreID       int
	WithoutGenres []int
	ReleaseTypes  []int
	MinRuntime    int
	SortBy        string
	MinVoteCount  int
	YearMin       int
	YearMax       int
	RatingMin     float64
	RatingMax     float64
}

// Values encodes the query for the given page
func (q *DiscoverQuery) Values(page int) url.Values {
	params := url.Values{}
	if q.GenreID != 0 {
		params.Set("with_genres", strconv.Itoa(q.GenreID))
	}
	if len(q.WithoutGenres) > 0 {
		params.Set("without_genres", joinInts(q.WithoutGenres, ","))
	}
	if len(q.ReleaseTypes) > 0 {
		params.Set("with_release_type", joinInts(q.ReleaseTypes, "|"))
	}
	if q.MinRuntime > 0 {
		params.Set("with_runtime.gte", strconv.Itoa(q.MinRuntime))
	}
	if q.SortBy != "" {
		params.Set("sort_by", q.SortBy)
	}
	if q.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(q.MinVoteCount))
	}
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", q.YearMin))
	params.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", q.YearMax))
	params.Set("vote_average.gte", strconv.FormatFloat(q.RatingMin, 'f', -1, 64))
	params.Set("vote_average.lte", strconv.FormatFloat(q.RatingMax, 'f', -1, 64))
	params.Set("page", strconv.Itoa(page))
	return params
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
