package postgres

import (
	"context"
	"errors"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/movie"

	"gorm.io/gorm"
)

// GenreModel represents the database model for genres. Names are unique at
// the store level, so a concurrent duplicate create surfaces as a constraint
// error instead of a duplicate row.
type GenreModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null;unique"`
}

// TableName specifies the table name for GORM
func (GenreModel) TableName() string {
	return "genres"
}

// MovieModel represents the database model for movies. Scores keep one
// fractional digit (numeric(3,1) / numeric(4,1) in the migration). The
// (name, id) pair is indexed for name lookups; name alone is not unique.
type MovieModel struct {
	ID         int64        `gorm:"primaryKey"`
	Name       string       `gorm:"not null"`
	Director   string       `gorm:"not null"`
	IMDBScore  float64      `gorm:"column:imdb_score;not null"`
	Popularity float64      `gorm:"not null"`
	Genres     []GenreModel `gorm:"many2many:movie_genres"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Search builds one query from the independently-optional filters. Supplied
// filters combine with AND; the genre filter passes a movie belonging to any
// of the listed genres. Total counts the whole filtered set, not the page.
func (r *MovieRepository) Search(ctx context.Context, f movie.SearchFilter) (movie.Page, error) {
	q := r.db.WithContext(ctx).Model(&MovieModel{})

	if f.Name != "" {
		q = q.Where("movies.name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Director != "" {
		q = q.Where("movies.director ILIKE ?", "%"+f.Director+"%")
	}
	if f.MinRating != nil {
		q = q.Where("movies.imdb_score >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		q = q.Where("movies.imdb_score <= ?", *f.MaxRating)
	}
	if f.Popularity != nil {
		q = q.Where("movies.popularity = ?", *f.Popularity)
	}
	if len(f.Genres) > 0 {
		q = q.Where(
			"EXISTS (SELECT 1 FROM movie_genres mg JOIN genres g ON g.id = mg.genre_id WHERE mg.movie_id = movies.id AND g.name IN ?)",
			f.Genres,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return movie.Page{}, err
	}

	var models []MovieModel
	err := q.Order("movies.popularity ASC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Preload("Genres").
		Find(&models).Error
	if err != nil {
		return movie.Page{}, err
	}

	return movie.Page{
		Page:    f.Page,
		PerPage: f.PerPage,
		Total:   total,
		Movies:  toDomainMovies(models),
	}, nil
}

// GetByID fetches a movie with its genres.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Preload("Genres").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, errs.Errorf(errs.ENOTFOUND, "movie with id %d not found", id)
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// GetByName fetches the first movie with the given name. Names are not
// unique; ordering by id keeps the pick stable.
func (r *MovieRepository) GetByName(ctx context.Context, name string) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id").
		Preload("Genres").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, errs.Errorf(errs.ENOTFOUND, "movie with name %s not found", name)
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// Create persists a movie and its resolved genres in one transaction.
func (r *MovieRepository) Create(ctx context.Context, m movie.Movie, genres []string) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolved, err := resolveGenres(tx, genres)
		if err != nil {
			return err
		}
		model = MovieModel{
			Name:       m.Name,
			Director:   m.Director,
			IMDBScore:  m.IMDBScore,
			Popularity: m.Popularity,
			Genres:     resolved,
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// UpdateByID applies a partial update. Only present patch fields change; a
// present genre list replaces the whole association set.
func (r *MovieRepository) UpdateByID(ctx context.Context, id int64, patch movie.UpdatePatch) (movie.Movie, error) {
	return r.update(ctx, patch, func(tx *gorm.DB, model *MovieModel) error {
		if err := tx.First(model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "movie with id %d not found", id)
			}
			return err
		}
		return nil
	})
}

// UpdateByName applies a partial update to the first movie with that name.
func (r *MovieRepository) UpdateByName(ctx context.Context, name string, patch movie.UpdatePatch) (movie.Movie, error) {
	return r.update(ctx, patch, func(tx *gorm.DB, model *MovieModel) error {
		err := tx.Where("name = ?", name).Order("id").First(model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "movie with name %s not found", name)
			}
			return err
		}
		return nil
	})
}

func (r *MovieRepository) update(
	ctx context.Context,
	patch movie.UpdatePatch,
	load func(tx *gorm.DB, model *MovieModel) error,
) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := load(tx, &model); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Director != nil {
			updates["director"] = *patch.Director
		}
		if patch.IMDBScore != nil {
			updates["imdb_score"] = *patch.IMDBScore
		}
		if patch.Popularity != nil {
			updates["popularity"] = *patch.Popularity
		}
		if len(updates) > 0 {
			if err := tx.Model(&model).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Genres != nil {
			resolved, err := resolveGenres(tx, *patch.Genres)
			if err != nil {
				return err
			}
			if err := tx.Model(&model).Association("Genres").Replace(resolved); err != nil {
				return err
			}
		}

		return tx.Preload("Genres").First(&model, model.ID).Error
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// DeleteByID removes a movie. Genre and favorite association rows go with it
// through the ON DELETE CASCADE foreign keys.
func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "movie with id %d not found", id)
	}
	return nil
}

// DeleteByName removes the first movie with the given name.
func (r *MovieRepository) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		err := tx.Where("name = ?", name).Order("id").First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "movie with name %s not found", name)
			}
			return err
		}
		return tx.Delete(&model).Error
	})
}

// resolveGenres maps trimmed genre names to rows, creating missing ones.
// The lookup-then-create pair is not atomic across transactions; the unique
// index on genres.name keeps concurrent creates from duplicating rows.
func resolveGenres(tx *gorm.DB, names []string) ([]GenreModel, error) {
	genres := make([]GenreModel, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var g GenreModel
		err := tx.Where("name = ?", name).First(&g).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			g = GenreModel{Name: name}
			err = tx.Create(&g).Error
		}
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	genres := make([]movie.Genre, len(model.Genres))
	for i, g := range model.Genres {
		genres[i] = movie.Genre{ID: g.ID, Name: g.Name}
	}
	return movie.Movie{
		ID:         model.ID,
		Name:       model.Name,
		Director:   model.Director,
		IMDBScore:  model.IMDBScore,
		Popularity: model.Popularity,
		Genres:     genres,
	}
}

func toDomainMovies(models []MovieModel) []movie.Movie {
	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies
}
