package service

// RandomMovieRequest query parameters of GET /api/random.
// Values are kept as strings: anything that does not parse falls back to its default.
type RandomMovieRequest struct {
	YearMin   string `form:"yearMin"`
	YearMax   string `form:"yearMax"`
	RatingMin string `form:"ratingMin"`
	RatingMax string `form:"ratingMax"`
}

// GenreResponse one catalog genre
type GenreResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListGenresResponse body of GET /api/genres
type ListGenresResponse struct {
	Genres []*GenreResponse `json:"genres"`
}

// RatingResponse one third-party rating
type RatingResponse struct {
	Source string `json:"source"`
	Value  string `json:"value"`
}

// MovieResponse body of GET /api/random
type MovieResponse struct {
	Title       string            `json:"title"`
	ReleaseDate string            `json:"release_date"`
	Director    string            `json:"director"`
	PosterURL   *string           `json:"poster_url"`
	Ratings     []*RatingResponse `json:"ratings"`
}

// ListYearsResponse body of GET /api/years
type ListYearsResponse struct {
	Years []int `json:"years"`
}
