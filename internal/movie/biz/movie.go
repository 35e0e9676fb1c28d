package biz

import (
	"context"
	"strings"
	"time"
)

// MinYear is the oldest release year offered and the default lower year bound
const MinYear = 1950

// Default rating bounds, on the provider's 0-10 vote average scale
const (
	DefaultRatingMin = 0.0
	DefaultRatingMax = 10.0
)

// FilterCriteria bounds a recommendation. Values are passed to the
// catalog as given; only absent values are defaulted.
type FilterCriteria struct {
	YearMin   int
	YearMax   int
	RatingMin float64
	RatingMax float64
}

// DefaultFilterCriteria returns the widest criteria as of now
func DefaultFilterCriteria(now time.Time) FilterCriteria {
	return FilterCriteria{
		YearMin:   MinYear,
		YearMax:   now.Year(),
		RatingMin: DefaultRatingMin,
		RatingMax: DefaultRatingMax,
	}
}

// Genre is one catalog genre
type Genre struct {
	ID   int
	Name string
}

// Candidate is a movie picked from a discover page, before enrichment
type Candidate struct {
	ID          int64
	Title       string
	ReleaseDate string
	PosterPath  string
	GenreIDs    []int
}

// CrewMember is one credited crew member of a movie
type CrewMember struct {
	Name string
	Job  string
}

// Rating is one third-party score, e.g. {"Rotten Tomatoes", "91%"}
type Rating struct {
	Source string
	Value  string
}

// ResolvedMovie is the recommendation returned to callers
type ResolvedMovie struct {
	Title       string
	ReleaseDate string
	Director    string
	PosterURL   *string
	Ratings     []Rating
}

// DiscoverFilter is the full discovery query for one genre
type DiscoverFilter struct {
	GenreID       int
	WithoutGenres []int
	ReleaseTypes  []int
	MinRuntime    int
	SortBy        string
	MinVoteCount  int
	Criteria      FilterCriteria
}

// DiscoverPage is one page of discovery results.
// TotalPages is whatever the catalog reported; the resolver clamps it.
type DiscoverPage struct {
	TotalPages int
	Results    []*Candidate
}

// Catalog is the movie metadata provider
type Catalog interface {
	Genres(ctx context.Context) ([]*Genre, error)
	Discover(ctx context.Context, filter *DiscoverFilter, page int) (*DiscoverPage, error)
	Credits(ctx context.Context, movieID int64) ([]*CrewMember, error)
	PosterURL(posterPath string) *string
}

// RatingsSource is the optional ratings provider
type RatingsSource interface {
	Ratings(ctx context.Context, title, year string) ([]Rating, error)
}

// DirectorNames joins the names of crew members whose job is exactly
// "Director", keeping the provider's order.
func DirectorNames(crew []*CrewMember) string {
	var names []string
	for _, member := range crew {
		if member != nil && member.Job == "Director" {
			names = append(names, member.Name)
		}
	}
	return strings.Join(names, ", ")
}

// ReleaseYear returns the leading four digits of a release date, or "" when
// the date does not start with a year.
func ReleaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	for _, r := range releaseDate[:4] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return releaseDate[:4]
}
