package favorite

import (
	"context"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/movie"
)

type Service interface {
	AddFavorite(ctx context.Context, userID, movieID int64) (movie.Movie, error)
	RemoveFavorite(ctx context.Context, userID int64, movieName string) error
}

type Repository interface {
	// Add persists the (user, movie) association. It reports ENOTFOUND when
	// either side is missing and ECONFLICT when the pair already exists.
	Add(ctx context.Context, userID, movieID int64) (movie.Movie, error)

	// RemoveByName deletes every favorite of the user whose movie name
	// equals name, in one transaction, returning the number of rows removed.
	RemoveByName(ctx context.Context, userID int64, name string) (int64, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) AddFavorite(ctx context.Context, userID, movieID int64) (movie.Movie, error) {
	return uc.r.Add(ctx, userID, movieID)
}

// RemoveFavorite is keyed by movie name rather than id. Names are not
// globally unique, so every matching favorite of the user is removed.
func (uc *Usecase) RemoveFavorite(ctx context.Context, userID int64, movieName string) error {
	movieName = strings.TrimSpace(movieName)
	if movieName == "" {
		return errs.Errorf(errs.EINVALID, "favorite: movie name is required")
	}

	removed, err := uc.r.RemoveByName(ctx, userID, movieName)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFavorite
	}
	return nil
}
