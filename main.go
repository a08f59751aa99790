package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"reelgrid/api"
	"reelgrid/config"
	"reelgrid/handlers"
	"reelgrid/internal/session"
	"reelgrid/services/account"
	"reelgrid/services/metadata"
	"reelgrid/services/streams"
	"reelgrid/utils"
)

func main() {
	// .env is a development convenience; absence is fine.
	if err := godotenv.Load(); err == nil {
		log.Printf("[main] loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] configuration error: %v", err)
	}

	if cfg.Log.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	catalog := metadata.NewService(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Language, httpClient)
	accounts := account.NewClient(cfg.Account.BaseURL, httpClient)
	resolver := streams.NewResolver(catalog, cfg.Streams.BaseURL, httpClient)
	sessions := session.NewManager(cfg.Session.Secret, cfg.IsProduction())

	media := handlers.NewMediaHandler(catalog)
	streamsHandler := handlers.NewStreamsHandler(resolver)
	authHandler := handlers.NewAuthHandler(accounts, sessions)
	history := handlers.NewHistoryHandler(accounts)
	watchlist := handlers.NewWatchlistHandler(accounts)
	pages := handlers.NewPagesHandler(catalog, resolver, accounts)

	router := utils.NewRouter()
	router.Use(api.RequestLogger())
	router.Use(api.SessionMiddleware(sessions))

	// Public API surface
	router.HandleFunc("/api/media", media.Discover).Methods(http.MethodGet)
	router.HandleFunc("/api/series/{id}/season/{season}", media.SeasonEpisodes).Methods(http.MethodGet)
	router.HandleFunc("/api/streams/movie/{id}", streamsHandler.MovieStreams).Methods(http.MethodGet)
	router.HandleFunc("/api/streams/series/{id}/{season}/{episode}", streamsHandler.EpisodeStreams).Methods(http.MethodGet)

	// Session-gated API surface
	gated := router.PathPrefix("/api").Subrouter()
	gated.Use(api.RequireSession())
	gated.HandleFunc("/history", history.List).Methods(http.MethodGet)
	gated.HandleFunc("/history", history.Update).Methods(http.MethodPost)
	gated.HandleFunc("/history/{mediaID}", history.Item).Methods(http.MethodGet)
	gated.HandleFunc("/watchlist", watchlist.List).Methods(http.MethodGet)
	gated.HandleFunc("/watchlist", watchlist.Add).Methods(http.MethodPost)
	gated.HandleFunc("/watchlist/{itemID}", watchlist.Remove).Methods(http.MethodDelete)

	// Auth surface; register and login are throttled per IP.
	throttle := api.NewCredentialThrottle(rate.Every(12*time.Second), 5)
	authRoutes := router.PathPrefix("/auth").Subrouter()
	authRoutes.Use(throttle.Middleware())
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	me := router.PathPrefix("/auth/me").Subrouter()
	me.Use(api.RequireSession())
	me.HandleFunc("", authHandler.Me).Methods(http.MethodGet)

	// Page bundles
	router.HandleFunc("/pages/home", pages.Home).Methods(http.MethodGet)
	router.HandleFunc("/pages/movies", pages.Movies).Methods(http.MethodGet)
	router.HandleFunc("/pages/series", pages.Series).Methods(http.MethodGet)
	router.HandleFunc("/pages/movies/{id}", pages.MovieDetails).Methods(http.MethodGet)
	router.HandleFunc("/pages/series/{id}", pages.SeriesDetails).Methods(http.MethodGet)
	router.HandleFunc("/pages/series/{id}/season/{season}/episode/{episode}", pages.Episode).Methods(http.MethodGet)
	router.HandleFunc("/pages/search", pages.Search).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
