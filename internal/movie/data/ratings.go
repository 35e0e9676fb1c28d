package data

import (
	"context"

	"github.com/lk2023060901/movie-roulette/internal/movie/biz"
	"github.com/lk2023060901/movie-roulette/internal/pkg/omdb"
)

var _ biz.RatingsSource = (*RatingsRepo)(nil)

// RatingsRepo implements biz.RatingsSource on top of the OMDB client
type RatingsRepo struct {
	client *omdb.Client
}

// NewRatingsRepo creates a new ratings repository
func NewRatingsRepo(client *omdb.Client) *RatingsRepo {
	return &RatingsRepo{client: client}
}

func (r *RatingsRepo) Ratings(ctx context.Context, title, year string) ([]biz.Rating, error) {
	ratings, err := r.client.Ratings(ctx, title, year)
	if err != nil {
		return nil, err
	}

	result := make([]biz.Rating, len(ratings))
	for i, rt := range ratings {
		result[i] = biz.Rating{Source: rt.Source, Value: rt.Value}
	}
	return result, nil
}
