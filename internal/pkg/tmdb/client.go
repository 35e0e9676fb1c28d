package tmdb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/lk2023060901/movie-roulette/internal/pkg/httpclient"
	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
)

const providerName = "tmdb"

// Client talks to the TMDB v3 REST API.
// Response bodies are probed with gjson so that a missing or mistyped field
// degrades to an empty value instead of failing the whole decode.
type Client struct {
	config *Config
	http   *httpclient.Client
	logger *logger.Logger
}

// New creates a TMDB client
func New(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	named := log.Named(providerName)
	return &Client{
		config: cfg,
		http:   httpclient.New(providerName, cfg.Timeout, named),
		logger: named,
	}, nil
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Genres fetches the movie genre catalog. Any non-2xx answer is an *APIError.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	body, err := c.get(ctx, "genres", "/genre/movie/list", url.Values{})
	if err != nil {
		return nil, err
	}

	list := body.Get("genres")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: genres is not an array", ErrMalformedResponse)
	}

	items := list.Array()
	genres := make([]Genre, 0, len(items))
	for _, item := range items {
		genres = append(genres, Genre{
			ID:   int(item.Get("id").Int()),
			Name: item.Get("name").String(),
		})
	}
	return genres, nil
}

// Discover fetches one page of /discover/movie.
// A rejected request whose body is still JSON (rate limiting, bad page)
// reads as a page without results.
func (c *Client) Discover(ctx context.Context, query *DiscoverQuery, page int) (*DiscoverPage, error) {
	body, err := c.get(ctx, "discover", "/discover/movie", query.Values(page))
	if err != nil && !c.degrade(ctx, "discover", body, err) {
		return nil, err
	}

	result := &DiscoverPage{
		Page:       int(body.Get("page").Int()),
		TotalPages: parseCount(body.Get("total_pages")),
	}

	list := body.Get("results")
	if !list.IsArray() {
		return result, nil
	}
	for _, item := range list.Array() {
		result.Results = append(result.Results, parseMovie(item))
	}
	return result, nil
}

// Credits fetches the crew of a movie. A missing crew list, or a rejected
// request with a JSON body, yields no members.
func (c *Client) Credits(ctx context.Context, movieID int64) ([]CrewMember, error) {
	body, err := c.get(ctx, "credits", fmt.Sprintf("/movie/%d/credits", movieID), url.Values{})
	if err != nil && !c.degrade(ctx, "credits", body, err) {
		return nil, err
	}

	list := body.Get("crew")
	if !list.IsArray() {
		return nil, nil
	}

	items := list.Array()
	crew := make([]CrewMember, 0, len(items))
	for _, item := range items {
		crew = append(crew, CrewMember{
			Name:       item.Get("name").String(),
			Job:        item.Get("job").String(),
			Department: item.Get("department").String(),
		})
	}
	return crew, nil
}

// PosterURL joins the image base URL with posterPath, or returns nil when there is no poster
func (c *Client) PosterURL(posterPath string) *string {
	if posterPath == "" {
		return nil
	}
	u := c.config.ImageBaseURL + posterPath
	return &u
}

// get returns the parsed body. A non-2xx answer yields an *APIError, together
// with the parsed body when that body is valid JSON.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) (gjson.Result, error) {
	if c.config.APIKey == "" {
		return gjson.Result{}, ErrMissingAPIKey
	}

	params.Set("api_key", c.config.APIKey)
	params.Set("language", c.config.Language)

	resp, err := c.http.Get(ctx, endpoint, c.config.BaseURL+path, params)
	if err != nil {
		return gjson.Result{}, err
	}

	valid := gjson.ValidBytes(resp.Body)
	if !resp.OK() {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if !valid {
			return gjson.Result{}, apiErr
		}
		body := gjson.ParseBytes(resp.Body)
		apiErr.StatusMessage = body.Get("status_message").String()
		return body, apiErr
	}

	if !valid {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON from %s", ErrMalformedResponse, endpoint)
	}
	return gjson.ParseBytes(resp.Body), nil
}

// degrade reports whether err is an upstream rejection that still carried a
// JSON body, which callers then read as an empty answer.
func (c *Client) degrade(ctx context.Context, endpoint string, body gjson.Result, err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !body.Exists() {
		return false
	}
	c.logger.WithContext(ctx).Warn("tmdb rejected request, treating as empty",
		zap.String("endpoint", endpoint),
		zap.Int("status", apiErr.StatusCode),
		zap.String("status_message", apiErr.StatusMessage),
	)
	return true
}

func parseMovie(item gjson.Result) Movie {
	movie := Movie{
		ID:          item.Get("id").Int(),
		Title:       item.Get("title").String(),
		ReleaseDate: item.Get("release_date").String(),
		PosterPath:  item.Get("poster_path").String(),
	}
	for _, id := range item.Get("genre_ids").Array() {
		movie.GenreIDs = append(movie.GenreIDs, int(id.Int()))
	}
	return movie
}

// parseCount reads a count that may arrive as a number or a numeric string.
// Anything else reads as 0.
func parseCount(value gjson.Result) int {
	var f float64
	switch value.Type {
	case gjson.Number:
		f = value.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
