package movie

import (
	"strings"

	"moviecatalog/errs"
)

var (
	ErrInvalidName     = errs.Errorf(errs.EINVALID, "movie: invalid name")
	ErrInvalidDirector = errs.Errorf(errs.EINVALID, "movie: invalid director")
	ErrInvalidScore    = errs.Errorf(errs.EINVALID, "movie: imdb score must be between 0 and 10")

	// ErrNoMovies covers both an empty catalog and a search with zero
	// matches. List and search surface it as a 404, an observable part of
	// the API contract.
	ErrNoMovies = errs.Errorf(errs.ENOTFOUND, "no movies matched the given criteria")
)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Movie struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Director   string  `json:"director"`
	IMDBScore  float64 `json:"imdb_score"`
	Popularity float64 `json:"popularity"`
	Genres     []Genre `json:"genres"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(m.Director) == "" {
		return ErrInvalidDirector
	}
	if m.IMDBScore < 0 || m.IMDBScore > 10 {
		return ErrInvalidScore
	}
	return nil
}

const (
	DefaultPage    = 1
	DefaultPerPage = 25
)

// SearchFilter carries the optional search parameters. All supplied filters
// combine with AND; within Genres a movie matching any one listed genre
// passes the genre filter.
type SearchFilter struct {
	Name       string
	Director   string
	MinRating  *float64
	MaxRating  *float64
	Popularity *float64
	Genres     []string
	Page       int
	PerPage    int
}

// Normalize applies pagination defaults and drops blank genre names.
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	genres := f.Genres[:0]
	for _, g := range f.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	f.Genres = genres
}

// Page is the response envelope for paginated movie listings. Total counts
// every row matching the filters, not just the returned slice.
type Page struct {
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Total   int64   `json:"total"`
	Movies  []Movie `json:"movies"`
}

// UpdatePatch holds partial-update fields. Nil means "leave unchanged".
// A non-nil Genres replaces the whole association set, never merges.
type UpdatePatch struct {
	Name       *string
	Director   *string
	IMDBScore  *float64
	Popularity *float64
	Genres     *[]string
}

func (p UpdatePatch) Empty() bool {
	return p.Name == nil && p.Director == nil && p.IMDBScore == nil &&
		p.Popularity == nil && p.Genres == nil
}
