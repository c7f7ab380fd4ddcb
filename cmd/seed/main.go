package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"moviecatalog/seed"

	_ "github.com/lib/pq"
)

func main() {
	var (
		datasetPath string
		clearFirst  bool
	)

	flag.StringVar(&datasetPath, "dataset", "", "Path to the JSON dataset (defaults to DATASET_PATH)")
	flag.BoolVar(&clearFirst, "clear", false, "Clear all data before loading")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if datasetPath == "" {
		datasetPath = cfg.DatasetPath
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if clearFirst {
		if err := postgres.NewTruncater(db).TruncateAll(ctx); err != nil {
			slog.Error("clear failed", "error", err)
			os.Exit(1)
		}
		slog.Info("existing data cleared")
	}

	movies := movie.NewUsecase(postgres.NewMovieRepository(db))
	loader := seed.NewLoader(movies)

	count, err := loader.LoadFile(ctx, datasetPath)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "movies", count, "dataset", datasetPath)
}
