package data

import (
	"context"
	"errors"

	"github.com/lk2023060901/movie-roulette/internal/movie/biz"
	"github.com/lk2023060901/movie-roulette/internal/pkg/tmdb"
)

var _ biz.Catalog = (*CatalogRepo)(nil)

// CatalogRepo implements biz.Catalog on top of the TMDB client
type CatalogRepo struct {
	client *tmdb.Client
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(client *tmdb.Client) *CatalogRepo {
	return &CatalogRepo{client: client}
}

func (r *CatalogRepo) Genres(ctx context.Context) ([]*biz.Genre, error) {
	genres, err := r.client.Genres(ctx)
	if err != nil {
		return nil, translateError(err)
	}

	result := make([]*biz.Genre, len(genres))
	for i, g := range genres {
		result[i] = &biz.Genre{ID: g.ID, Name: g.Name}
	}
	return result, nil
}

func (r *CatalogRepo) Discover(ctx context.Context, filter *biz.DiscoverFilter, page int) (*biz.DiscoverPage, error) {
	resp, err := r.client.Discover(ctx, toDiscoverQuery(filter), page)
	if err != nil {
		return nil, translateError(err)
	}

	result := &biz.DiscoverPage{
		TotalPages: resp.TotalPages,
		Results:    make([]*biz.Candidate, len(resp.Results)),
	}
	for i, m := range resp.Results {
		result.Results[i] = &biz.Candidate{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			PosterPath:  m.PosterPath,
			GenreIDs:    m.GenreIDs,
		}
	}
	return result, nil
}

func (r *CatalogRepo) Credits(ctx context.Context, movieID int64) ([]*biz.CrewMember, error) {
	crew, err := r.client.Credits(ctx, movieID)
	if err != nil {
		return nil, translateError(err)
	}

	result := make([]*biz.CrewMember, len(crew))
	for i, m := range crew {
		result[i] = &biz.CrewMember{Name: m.Name, Job: m.Job}
	}
	return result, nil
}

func (r *CatalogRepo) PosterURL(posterPath string) *string {
	return r.client.PosterURL(posterPath)
}

func toDiscoverQuery(filter *biz.DiscoverFilter) *tmdb.DiscoverQuery {
	return &tmdb.DiscoverQuery{
		GenreID:       filter.GenreID,
		WithoutGenres: filter.WithoutGenres,
		ReleaseTypes:  filter.ReleaseTypes,
		MinRuntime:    filter.MinRuntime,
		SortBy:        filter.SortBy,
		MinVoteCount:  filter.MinVoteCount,
		YearMin:       filter.Criteria.YearMin,
		YearMax:       filter.Criteria.YearMax,
		RatingMin:     filter.Criteria.RatingMin,
		RatingMax:     filter.Criteria.RatingMax,
	}
}

func translateError(err error) error {
	if errors.Is(err, tmdb.ErrMissingAPIKey) {
		return biz.ErrMissingAPIKey
	}
	return err
}
