package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/movie-roulette/internal/movie/biz"
	"github.com/lk2023060901/movie-roulette/internal/movie/data"
	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
	"github.com/lk2023060901/movie-roulette/internal/pkg/omdb"
	"github.com/lk2023060901/movie-roulette/internal/pkg/tmdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeTMDB serves the three endpoints the resolver uses
type fakeTMDB struct {
	genres   string
	discover string
	credits  string
	status   int

	// per-endpoint overrides of status
	discoverStatus int
	creditsStatus  int

	genreCalls int
	discoverQs []map[string]string
}

func newFakeTMDB() *fakeTMDB {
	return &fakeTMDB{
		genres:   `{"genres":[{"id":18,"name":"Drama"}]}`,
		discover: `{"page":1,"total_pages":1,"results":[{"id":155,"title":"The Dark Knight","release_date":"2008-07-16","poster_path":"/dk.jpg"}]}`,
		credits:  `{"crew":[{"name":"Christopher Nolan","job":"Director"},{"name":"Hans Zimmer","job":"Original Music Composer"}]}`,
		status:   http.StatusOK,
	}
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/genre/movie/list":
		f.genreCalls++
		w.WriteHeader(f.status)
		w.Write([]byte(f.genres))
	case r.URL.Path == "/discover/movie":
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		f.discoverQs = append(f.discoverQs, q)
		w.WriteHeader(statusOr(f.discoverStatus, f.status))
		w.Write([]byte(f.discover))
	case strings.HasSuffix(r.URL.Path, "/credits"):
		w.WriteHeader(statusOr(f.creditsStatus, f.status))
		w.Write([]byte(f.credits))
	default:
		w.WriteHeader(f.status)
		w.Write([]byte(`{}`))
	}
}

func statusOr(status, fallback int) int {
	if status != 0 {
		return status
	}
	return fallback
}

type testEnv struct {
	router *gin.Engine
	tmdb   *fakeTMDB
}

func setupTestEnv(t *testing.T, tmdbKey string, omdbHandler http.HandlerFunc) *testEnv {
	t.Helper()

	fake := newFakeTMDB()
	tmdbSrv := httptest.NewServer(fake)
	t.Cleanup(tmdbSrv.Close)

	tmdbCfg := tmdb.DefaultConfig()
	tmdbCfg.BaseURL = tmdbSrv.URL
	tmdbCfg.APIKey = tmdbKey
	tmdbClient, err := tmdb.New(tmdbCfg, logger.NewNop())
	require.NoError(t, err)

	var ratings biz.RatingsSource
	if omdbHandler != nil {
		omdbSrv := httptest.NewServer(omdbHandler)
		t.Cleanup(omdbSrv.Close)

		omdbCfg := omdb.DefaultConfig()
		omdbCfg.BaseURL = omdbSrv.URL + "/"
		omdbCfg.APIKey = "omdb-key"
		omdbClient, err := omdb.New(omdbCfg, logger.NewNop())
		require.NoError(t, err)
		ratings = data.NewRatingsRepo(omdbClient)
	}

	uc := biz.NewMovieUseCase(
		data.NewCatalogRepo(tmdbClient),
		ratings,
		logger.NewNop(),
		biz.WithClock(func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) }),
	)

	router := gin.New()
	NewMovieService(uc, logger.NewNop()).RegisterRoutes(router.Group("/api"))

	return &testEnv{router: router, tmdb: fake}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	e.router.ServeHTTP(w, req)
	return w
}

func TestRandomMovie_Scenario(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", nil)

	w := env.get(t, "/api/random?yearMin=2000&yearMax=2010&ratingMin=7&ratingMax=10")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp MovieResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "The Dark Knight", resp.Title)
	assert.GreaterOrEqual(t, resp.ReleaseDate, "2000-01-01")
	assert.LessOrEqual(t, resp.ReleaseDate, "2010-12-31")
	assert.Equal(t, "Christopher Nolan", resp.Director)
	require.NotNil(t, resp.PosterURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/dk.jpg", *resp.PosterURL)
	assert.NotNil(t, resp.Ratings)
	assert.Contains(t, w.Body.String(), `"ratings":[]`)

	require.NotEmpty(t, env.tmdb.discoverQs)
	q := env.tmdb.discoverQs[0]
	assert.Equal(t, "2000-01-01", q["primary_release_date.gte"])
	assert.Equal(t, "2010-12-31", q["primary_release_date.lte"])
	assert.Equal(t, "7", q["vote_average.gte"])
	assert.Equal(t, "10", q["vote_average.lte"])
}

func TestRandomMovie_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no parameters", ""},
		{"unparseable parameters", "?yearMin=abc&yearMax=&ratingMin=NaN&ratingMax=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, "tmdb-key", nil)

			w := env.get(t, "/api/random"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			q := env.tmdb.discoverQs[0]
			assert.Equal(t, "1950-01-01", q["primary_release_date.gte"])
			assert.Equal(t, "2026-12-31", q["primary_release_date.lte"])
			assert.Equal(t, "0", q["vote_average.gte"])
			assert.Equal(t, "10", q["vote_average.lte"])
		})
	}
}

func TestRandomMovie_WithRatings(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "The Dark Knight", r.URL.Query().Get("t"))
		assert.Equal(t, "2008", r.URL.Query().Get("y"))
		w.Write([]byte(`{"Response":"True","Ratings":[{"Source":"Metacritic","Value":"84/100"}]}`))
	})

	w := env.get(t, "/api/random")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"title": "The Dark Knight",
		"release_date": "2008-07-16",
		"director": "Christopher Nolan",
		"poster_url": "https://image.tmdb.org/t/p/w342/dk.jpg",
		"ratings": [{"source": "Metacritic", "value": "84/100"}]
	}`, w.Body.String())
}

func TestRandomMovie_RatingsFailureIsIgnored(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := env.get(t, "/api/random")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ratings":[]`)
}

func TestRandomMovie_NoPoster(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", nil)
	env.tmdb.discover = `{"total_pages":1,"results":[{"id":1,"title":"Untitled Poster","release_date":"2001-01-01","poster_path":null}]}`

	w := env.get(t, "/api/random")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"poster_url":null`)
}

func TestRandomMovie_Errors(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		mutate  func(*fakeTMDB)
		wantMsg string
	}{
		{
			name:    "missing api key",
			apiKey:  "",
			wantMsg: "TMDB_API_KEY not configured in environment",
		},
		{
			name:    "no results",
			apiKey:  "tmdb-key",
			mutate:  func(f *fakeTMDB) { f.discover = `{"total_pages":0,"results":[]}` },
			wantMsg: "No movies found after multiple attempts",
		},
		{
			name:    "malformed genres",
			apiKey:  "tmdb-key",
			mutate:  func(f *fakeTMDB) { f.genres = `{"genres":null}` },
			wantMsg: "Failed to fetch from movie provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, tt.apiKey, nil)
			if tt.mutate != nil {
				tt.mutate(env.tmdb)
			}

			w := env.get(t, "/api/random")
			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestRandomMovie_DiscoverRejectedIsEmptyAttempt(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", nil)
	env.tmdb.discoverStatus = http.StatusTooManyRequests
	env.tmdb.discover = `{"status_code":25,"status_message":"Your request count is over the allowed limit."}`

	w := env.get(t, "/api/random")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"No movies found after multiple attempts"}`, w.Body.String())
	assert.Equal(t, biz.MaxAttempts, env.tmdb.genreCalls)
	assert.Len(t, env.tmdb.discoverQs, 2*biz.MaxAttempts)
}

func TestRandomMovie_CreditsRejectedLeavesDirectorEmpty(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", nil)
	env.tmdb.creditsStatus = http.StatusNotFound
	env.tmdb.credits = `{"status_code":34,"status_message":"The resource you requested could not be found."}`

	w := env.get(t, "/api/random")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp MovieResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The Dark Knight", resp.Title)
	assert.Empty(t, resp.Director)
}

func TestRandomMovie_UnreachableProviderHidesDetails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	cfg := tmdb.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIKey = "key with/special+chars="
	client, err := tmdb.New(cfg, logger.NewNop())
	require.NoError(t, err)

	uc := biz.NewMovieUseCase(data.NewCatalogRepo(client), nil, logger.NewNop())
	router := gin.New()
	NewMovieService(uc, logger.NewNop()).RegisterRoutes(router.Group("/api"))

	for _, target := range []string{"/api/random", "/api/genres"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch from movie provider"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "api_key")
		assert.NotContains(t, w.Body.String(), "http://")
	}
}

func TestListGenres(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", nil)
	env.tmdb.genres = `{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`

	w := env.get(t, "/api/genres")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`, w.Body.String())
}

func TestListGenres_ProviderError(t *testing.T) {
	env := setupTestEnv(t, "tmdb-key", nil)
	env.tmdb.status = http.StatusBadGateway

	w := env.get(t, "/api/genres")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestListYears(t *testing.T) {
	env := setupTestEnv(t, "", nil)

	w := env.get(t, "/api/years")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListYearsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Years, 77)
	assert.Equal(t, 2026, resp.Years[0])
	assert.Equal(t, 1950, resp.Years[76])
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 2000, parseInt("2000", 1950))
	assert.Equal(t, 2000, parseInt(" 2000 ", 1950))
	assert.Equal(t, 1950, parseInt("", 1950))
	assert.Equal(t, 1950, parseInt("20.5", 1950))
	assert.Equal(t, -5, parseInt("-5", 1950))

	assert.Equal(t, 7.5, parseFloat("7.5", 0))
	assert.Equal(t, 7.0, parseFloat("7", 0))
	assert.Equal(t, 10.0, parseFloat("abc", 10))
	assert.Equal(t, 10.0, parseFloat("NaN", 10))
}
