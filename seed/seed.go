// Package seed loads the bundled IMDB sample dataset through the regular
// movie creation path, so seeded rows go through the same validation and
// genre resolution as live API writes.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"moviecatalog/movie"
)

// Record mirrors one entry of the imdb.json dataset. The dataset predates
// this service; its field names ("99popularity", "genre") are kept as-is.
type Record struct {
	Name       string   `json:"name"`
	Director   string   `json:"director"`
	IMDBScore  float64  `json:"imdb_score"`
	Popularity float64  `json:"99popularity"`
	Genres     []string `json:"genre"`
}

// Truncater clears all data rows across all tables without dropping schema.
type Truncater interface {
	TruncateAll(ctx context.Context) error
}

type Loader struct {
	movies movie.Service
}

func NewLoader(movies movie.Service) *Loader {
	return &Loader{movies: movies}
}

// LoadFile reads a JSON dataset from disk and imports every record.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return l.Load(ctx, file)
}

// Load decodes a JSON array of records and creates one movie per record.
// Records the movie service rejects are skipped and logged, not fatal.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode dataset: %w", err)
	}
	if len(records) == 0 {
		return 0, errors.New("dataset is empty")
	}

	count := 0
	for _, rec := range records {
		m := movie.Movie{
			Name:       rec.Name,
			Director:   rec.Director,
			IMDBScore:  rec.IMDBScore,
			Popularity: rec.Popularity,
		}
		if _, err := l.movies.CreateMovie(ctx, m, rec.Genres); err != nil {
			slog.Warn("skipping dataset record", "name", rec.Name, "error", err)
			continue
		}
		count++
	}

	return count, nil
}
