package httpserver_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTruncater struct {
	mock.Mock
}

func (m *MockTruncater) TruncateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imdb.json")
	data := `[
		{"name": "Alien", "director": "Ridley Scott", "imdb_score": 8.5, "99popularity": 86, "genre": ["Horror", "Sci-Fi"]},
		{"name": "Psycho", "director": "Alfred Hitchcock", "imdb_score": 8.7, "99popularity": 87, "genre": ["Horror"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestDatabaseRoutes_RequireAdmin(t *testing.T) {
	truncater := new(MockTruncater)
	server := httpserver.Default(testConfig())
	server.Truncater = truncater

	rec := doJSON(server, http.MethodPost, "/api/db/clear", signTestToken(t, false), nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	truncater.AssertNotCalled(t, "TruncateAll", mock.Anything)
}

func TestDatabaseRoutes_Clear(t *testing.T) {
	truncater := new(MockTruncater)
	server := httpserver.Default(testConfig())
	server.Truncater = truncater

	truncater.On("TruncateAll", mock.Anything).Return(nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/db/clear", signTestToken(t, true), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All data cleared.")
	truncater.AssertExpectations(t)
}

func TestDatabaseRoutes_Load(t *testing.T) {
	svc := new(MockMovieService)
	server := httpserver.Default(testConfig())
	server.Loader = seed.NewLoader(svc)
	server.DatasetPath = writeTestDataset(t)

	svc.On("CreateMovie", mock.Anything,
		movie.Movie{Name: "Alien", Director: "Ridley Scott", IMDBScore: 8.5, Popularity: 86},
		[]string{"Horror", "Sci-Fi"},
	).Return(movie.Movie{ID: 1}, nil).Once()
	svc.On("CreateMovie", mock.Anything,
		movie.Movie{Name: "Psycho", Director: "Alfred Hitchcock", IMDBScore: 8.7, Popularity: 87},
		[]string{"Horror"},
	).Return(movie.Movie{ID: 2}, nil).Once()

	rec := doJSON(server, http.MethodPost, "/api/db/load", signTestToken(t, true), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":2`)
	svc.AssertExpectations(t)
}

func TestDatabaseRoutes_LoadMissingDatasetIs500(t *testing.T) {
	svc := new(MockMovieService)
	server := httpserver.Default(testConfig())
	server.Loader = seed.NewLoader(svc)
	server.DatasetPath = "does/not/exist.json"

	rec := doJSON(server, http.MethodPost, "/api/db/load", signTestToken(t, true), nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	svc.AssertNotCalled(t, "CreateMovie", mock.Anything, mock.Anything, mock.Anything)
}
