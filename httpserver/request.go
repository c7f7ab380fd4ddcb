package httpserver

import "moviecatalog/movie"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateMovieRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Director   string   `json:"director" validate:"required,max=255"`
	IMDBScore  float64  `json:"imdb_score" validate:"gte=0,lte=10"`
	Popularity float64  `json:"popularity" validate:"gte=0,lte=100"`
	Genres     []string `json:"genres" validate:"omitempty,dive,max=100"`
}

func (r CreateMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Name:       r.Name,
		Director:   r.Director,
		IMDBScore:  r.IMDBScore,
		Popularity: r.Popularity,
	}
}

// UpdateMovieRequest mirrors the partial-update contract: absent keys stay
// nil and leave the stored value untouched; a present genres key replaces
// the whole genre set.
type UpdateMovieRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Director   *string   `json:"director" validate:"omitempty,min=1,max=255"`
	IMDBScore  *float64  `json:"imdb_score" validate:"omitempty,gte=0,lte=10"`
	Popularity *float64  `json:"popularity" validate:"omitempty,gte=0,lte=100"`
	Genres     *[]string `json:"genres" validate:"omitempty,dive,max=100"`
}

func (r UpdateMovieRequest) ToPatch() movie.UpdatePatch {
	return movie.UpdatePatch{
		Name:       r.Name,
		Director:   r.Director,
		IMDBScore:  r.IMDBScore,
		Popularity: r.Popularity,
		Genres:     r.Genres,
	}
}

type AddFavoriteRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}
