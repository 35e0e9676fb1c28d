package biz

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/lk2023060901/movie-roulette/internal/pkg/errors"
	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
	"github.com/lk2023060901/movie-roulette/internal/pkg/metrics"
)

const (
	// MaxAttempts is the hard ceiling on random picks per resolution
	MaxAttempts = 3

	// MaxDiscoverPages is the provider's own pagination ceiling
	MaxDiscoverPages = 500
)

// Discovery policy applied to every random pick
var (
	// ExcludedGenres TV movie, animation, music, family, documentary
	ExcludedGenres = []int{10770, 16, 10402, 10751, 99}

	// TheatricalReleaseTypes limited theatrical (2) and theatrical (3)
	TheatricalReleaseTypes = []int{2, 3}
)

const (
	minRuntimeMinutes = 70
	minVoteCount      = 50
	sortByPopularity  = "popularity.desc"
)

// Randomizer picks an index in [0, n)
type Randomizer interface {
	IntN(n int) int
}

type randFunc func(n int) int

func (f randFunc) IntN(n int) int { return f(n) }

// Option configures a MovieUseCase
type Option func(*MovieUseCase)

// WithRandomizer replaces the default process-wide random source
func WithRandomizer(r Randomizer) Option {
	return func(uc *MovieUseCase) {
		uc.rand = r
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(uc *MovieUseCase) {
		uc.now = now
	}
}

// MovieUseCase resolves random recommendations against a catalog and an
// optional ratings source. It holds no per-request state and is safe for
// concurrent use as long as its Randomizer is.
type MovieUseCase struct {
	catalog Catalog
	ratings RatingsSource
	rand    Randomizer
	now     func() time.Time
	logger  *logger.Logger
}

// NewMovieUseCase creates the use case. ratings may be nil, which disables
// ratings enrichment.
func NewMovieUseCase(catalog Catalog, ratings RatingsSource, log *logger.Logger, opts ...Option) *MovieUseCase {
	if log == nil {
		log = logger.L()
	}
	uc := &MovieUseCase{
		catalog: catalog,
		ratings: ratings,
		rand:    randFunc(rand.IntN),
		now:     time.Now,
		logger:  log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// DefaultCriteria returns the criteria used for absent request parameters
func (uc *MovieUseCase) DefaultCriteria() FilterCriteria {
	return DefaultFilterCriteria(uc.now())
}

// ListGenres returns the catalog's genre list
func (uc *MovieUseCase) ListGenres(ctx context.Context) ([]*Genre, error) {
	genres, err := uc.catalog.Genres(ctx)
	if err != nil {
		return nil, uc.classify(err)
	}
	return genres, nil
}

// ListYears returns every year from the current one down to MinYear
func (uc *MovieUseCase) ListYears() []int {
	current := uc.now().Year()
	if current < MinYear {
		return []int{}
	}

	years := make([]int, 0, current-MinYear+1)
	for y := current; y >= MinYear; y-- {
		years = append(years, y)
	}
	return years
}

// Resolve picks a random movie matching criteria and enriches it with its
// directors and, when a ratings source is configured, third-party ratings.
func (uc *MovieUseCase) Resolve(ctx context.Context, criteria FilterCriteria) (*ResolvedMovie, error) {
	log := uc.logger.WithContext(ctx)

	var candidate *Candidate
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		picked, err := uc.pickCandidate(ctx, criteria)
		if err != nil {
			metrics.ResolveTotal.WithLabelValues(metrics.OutcomeError).Inc()
			log.Error("random pick failed", zap.Int("attempt", attempt), zap.Error(err))
			return nil, uc.classify(err)
		}
		if picked != nil {
			metrics.ResolveAttemptsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
			candidate = picked
			break
		}

		metrics.ResolveAttemptsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		log.Debug("random pick found no movie", zap.Int("attempt", attempt))
	}

	if candidate == nil {
		metrics.ResolveTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return nil, apperrors.NewNoResultsError()
	}

	crew, err := uc.catalog.Credits(ctx, candidate.ID)
	if err != nil {
		metrics.ResolveTotal.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error("failed to fetch credits", zap.Int64("movie_id", candidate.ID), zap.Error(err))
		return nil, uc.classify(err)
	}

	movie := &ResolvedMovie{
		Title:       candidate.Title,
		ReleaseDate: candidate.ReleaseDate,
		Director:    DirectorNames(crew),
		PosterURL:   uc.catalog.PosterURL(candidate.PosterPath),
		Ratings:     uc.lookupRatings(ctx, candidate),
	}

	metrics.ResolveTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("movie resolved",
		zap.Int64("movie_id", candidate.ID),
		zap.String("title", movie.Title),
		zap.Int("ratings", len(movie.Ratings)),
	)
	return movie, nil
}

// pickCandidate runs one attempt: random genre, random page, random result.
// It returns nil without error when the chosen page is empty.
func (uc *MovieUseCase) pickCandidate(ctx context.Context, criteria FilterCriteria) (*Candidate, error) {
	genres, err := uc.catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, ErrEmptyCatalog
	}
	genre := genres[uc.rand.IntN(len(genres))]

	filter := uc.discoverFilter(genre.ID, criteria)

	first, err := uc.catalog.Discover(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	page := uc.rand.IntN(ClampPages(first.TotalPages)) + 1

	result, err := uc.catalog.Discover(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	candidates := make([]*Candidate, 0, len(result.Results))
	for _, c := range result.Results {
		if c != nil && c.Title != "" {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[uc.rand.IntN(len(candidates))], nil
}

func (uc *MovieUseCase) discoverFilter(genreID int, criteria FilterCriteria) *DiscoverFilter {
	return &DiscoverFilter{
		GenreID:       genreID,
		WithoutGenres: ExcludedGenres,
		ReleaseTypes:  TheatricalReleaseTypes,
		MinRuntime:    minRuntimeMinutes,
		SortBy:        sortByPopularity,
		MinVoteCount:  minVoteCount,
		Criteria:      criteria,
	}
}

// lookupRatings never fails: every problem degrades to an empty list
func (uc *MovieUseCase) lookupRatings(ctx context.Context, candidate *Candidate) []Rating {
	if uc.ratings == nil {
		return []Rating{}
	}

	ratings, err := uc.ratings.Ratings(ctx, candidate.Title, ReleaseYear(candidate.ReleaseDate))
	if err != nil {
		metrics.RatingsEnrichmentFailures.Inc()
		uc.logger.WithContext(ctx).Warn("ratings lookup failed",
			zap.String("title", candidate.Title),
			zap.Error(err),
		)
		return []Rating{}
	}
	if ratings == nil {
		return []Rating{}
	}
	return ratings
}

// classify maps catalog failures onto application errors
func (uc *MovieUseCase) classify(err error) error {
	if errors.Is(err, ErrMissingAPIKey) {
		return apperrors.NewConfigurationError(MissingAPIKeyMessage)
	}
	return apperrors.NewProviderError(err)
}

// ClampPages bounds a reported page count to [1, MaxDiscoverPages]
func ClampPages(totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if totalPages > MaxDiscoverPages {
		return MaxDiscoverPages
	}
	return totalPages
}
