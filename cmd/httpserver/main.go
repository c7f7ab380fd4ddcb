package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"moviecatalog/auth"
	"moviecatalog/cache"
	"moviecatalog/favorite"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/hash"
	"moviecatalog/pkg/jwt"
	"moviecatalog/pkg/sentry"
	"moviecatalog/postgres"
	"moviecatalog/seed"
	"moviecatalog/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	movieRepo := postgres.NewMovieRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	attemptRepo := postgres.NewLoginAttemptRepository(db)

	hasher := hash.NewBcryptHasher()
	tokens := jwt.NewJWTProvider(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Second,
		time.Duration(cfg.Auth.RefreshTTL)*time.Second,
	)

	movieService := movie.NewUsecase(movieRepo)

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.MovieService = movieService
	server.FavoriteService = favorite.NewUsecase(favoriteRepo)
	server.UserService = user.NewUsecase(accountRepo, hasher)
	server.AuthService = auth.NewUsecase(accountRepo, attemptRepo, hasher, tokens)
	server.Loader = seed.NewLoader(movieService)
	server.Truncater = postgres.NewTruncater(db)

	if cfg.Redis.Addr != "" {
		store, err := cache.NewRedisStore(context.Background(), cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Error("Cannot connect to redis", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		server.Cache = store
	} else {
		server.Cache = cache.NewMemoryStore()
	}

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
