package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lk2023060901/movie-roulette/internal/movie/biz"
	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
	"github.com/lk2023060901/movie-roulette/internal/pkg/response"
)

// MovieService movie HTTP service
type MovieService struct {
	uc     *biz.MovieUseCase
	logger *logger.Logger
}

// NewMovieService creates the movie service
func NewMovieService(uc *biz.MovieUseCase, log *logger.Logger) *MovieService {
	if log == nil {
		log = logger.L()
	}
	return &MovieService{
		uc:     uc,
		logger: log,
	}
}

// ListGenres returns the provider's genre catalog
func (s *MovieService) ListGenres(c *gin.Context) {
	genres, err := s.uc.ListGenres(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	resp := &ListGenresResponse{Genres: make([]*GenreResponse, len(genres))}
	for i, g := range genres {
		resp.Genres[i] = &GenreResponse{ID: g.ID, Name: g.Name}
	}
	response.Success(c, resp)
}

// RandomMovie resolves one random movie matching the query filters
func (s *MovieService) RandomMovie(c *gin.Context) {
	var req RandomMovieRequest
	// Binding string fields cannot fail on content; malformed values default below.
	_ = c.ShouldBindQuery(&req)

	criteria := s.criteria(&req)
	movie, err := s.uc.Resolve(c.Request.Context(), criteria)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toMovieResponse(movie))
}

// ListYears returns the selectable release years, newest first
func (s *MovieService) ListYears(c *gin.Context) {
	response.Success(c, &ListYearsResponse{Years: s.uc.ListYears()})
}

// RegisterRoutes registers movie routes
func (s *MovieService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/genres", s.ListGenres)
	r.GET("/random", s.RandomMovie)
	r.GET("/years", s.ListYears)
}

func (s *MovieService) criteria(req *RandomMovieRequest) biz.FilterCriteria {
	criteria := s.uc.DefaultCriteria()
	criteria.YearMin = parseInt(req.YearMin, criteria.YearMin)
	criteria.YearMax = parseInt(req.YearMax, criteria.YearMax)
	criteria.RatingMin = parseFloat(req.RatingMin, criteria.RatingMin)
	criteria.RatingMax = parseFloat(req.RatingMax, criteria.RatingMax)
	return criteria
}

func (s *MovieService) handleError(c *gin.Context, err error) {
	s.logger.WithContext(c.Request.Context()).Error("movie request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	response.HandleError(c, err)
}

func parseInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseFloat(raw string, fallback float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return fallback
	}
	return v
}

func toMovieResponse(movie *biz.ResolvedMovie) *MovieResponse {
	resp := &MovieResponse{
		Title:       movie.Title,
		ReleaseDate: movie.ReleaseDate,
		Director:    movie.Director,
		PosterURL:   movie.PosterURL,
		Ratings:     make([]*RatingResponse, len(movie.Ratings)),
	}
	for i, r := range movie.Ratings {
		resp.Ratings[i] = &RatingResponse{Source: r.Source, Value: r.Value}
	}
	return resp
}
