package omdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lk2023060901/movie-roulette/internal/pkg/httpclient"
	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
)

const providerName = "omdb"

var (
	ErrNotFound          = errors.New("omdb: title not found")
	ErrMalformedResponse = errors.New("omdb: malformed response")
)

// Rating is one entry of the Ratings array, e.g. {"Source":"Rotten Tomatoes","Value":"91%"}
type Rating struct {
	Source string `json:"source"`
	Value  string `json:"value"`
}

// Client looks titles up in the OMDB API
type Client struct {
	config *Config
	http   *httpclient.Client
}

// New creates an OMDB client
func New(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("omdb: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: cfg,
		http:   httpclient.New(providerName, cfg.Timeout, log.Named(providerName)),
	}, nil
}

// Ratings looks up a movie by exact title and, when non-empty, release year.
// A successful answer without a usable Ratings array yields an empty list.
func (c *Client) Ratings(ctx context.Context, title, year string) ([]Rating, error) {
	params := url.Values{}
	params.Set("apikey", c.config.APIKey)
	params.Set("t", title)
	params.Set("type", "movie")
	if year != "" {
		params.Set("y", year)
	}

	resp, err := c.http.Get(ctx, "title", c.config.BaseURL, params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb: unexpected status code %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, ErrMalformedResponse
	}

	body := gjson.ParseBytes(resp.Body)
	if strings.EqualFold(body.Get("Response").String(), "False") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, body.Get("Error").String())
	}

	ratings := []Rating{}
	list := body.Get("Ratings")
	if !list.IsArray() {
		return ratings, nil
	}
	for _, item := range list.Array() {
		ratings = append(ratings, Rating{
			Source: item.Get("Source").String(),
			Value:  item.Get("Value").String(),
		})
	}
	return ratings, nil
}
