package postgres

import (
	"context"
	"errors"

	"moviecatalog/errs"
	"moviecatalog/favorite"
	"moviecatalog/movie"

	"gorm.io/gorm"
)

// FavoriteRepository implements favorite.Repository over the user_favorites
// association table.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add inserts the (user, movie) pair after checking both sides exist and the
// pair is new. The composite unique index backs the at-most-once invariant.
func (r *FavoriteRepository) Add(ctx context.Context, userID, movieID int64) (movie.Movie, error) {
	var result movie.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u UserModel
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "user with id %d not found", userID)
			}
			return err
		}

		var m MovieModel
		if err := tx.Preload("Genres").First(&m, movieID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "movie with id %d not found", movieID)
			}
			return err
		}

		var count int64
		err := tx.Table("user_favorites").
			Where("user_id = ? AND movie_id = ?", userID, movieID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return favorite.ErrAlreadyFavorite
		}

		// a concurrent add can slip past the count check; the composite
		// primary key turns it into a unique violation here
		err = tx.Exec("INSERT INTO user_favorites (user_id, movie_id) VALUES (?, ?)", userID, movieID).Error
		if err != nil {
			if isUniqueViolation(err) {
				return favorite.ErrAlreadyFavorite
			}
			return err
		}

		result = toDomainMovie(m)
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return result, nil
}

// RemoveByName deletes every favorite of the user pointing at a movie with
// the given name. Names are not unique, so this may remove several rows.
func (r *FavoriteRepository) RemoveByName(ctx context.Context, userID int64, name string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			"DELETE FROM user_favorites WHERE user_id = ? AND movie_id IN (SELECT id FROM movies WHERE name = ?)",
			userID, name,
		)
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
