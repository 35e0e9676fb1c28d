package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lk2023060901/movie-roulette/internal/conf"
	"github.com/lk2023060901/movie-roulette/internal/movie/biz"
	"github.com/lk2023060901/movie-roulette/internal/movie/data"
	"github.com/lk2023060901/movie-roulette/internal/movie/service"
	"github.com/lk2023060901/movie-roulette/internal/pkg/logger"
	"github.com/lk2023060901/movie-roulette/internal/pkg/omdb"
	"github.com/lk2023060901/movie-roulette/internal/pkg/tmdb"
	"github.com/lk2023060901/movie-roulette/internal/server"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(config.Log.Logger())
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	logger.InitGlobal(log)

	log.Info("config loaded successfully",
		zap.Bool("tmdb_configured", config.TMDB.APIKey != ""),
		zap.Bool("ratings_enabled", config.RatingsEnabled()),
		zap.String("static_dir", config.Static.Dir),
	)
	if config.TMDB.APIKey == "" {
		log.Warn("TMDB_API_KEY is not set, /api/genres and /api/random will fail")
	}

	// Initialize provider clients
	tmdbClient, err := tmdb.New(&config.TMDB, log)
	if err != nil {
		log.Fatal("failed to initialize tmdb client", zap.Error(err))
	}

	var ratings biz.RatingsSource
	if config.RatingsEnabled() {
		omdbClient, err := omdb.New(&config.OMDB, log)
		if err != nil {
			log.Fatal("failed to initialize omdb client", zap.Error(err))
		}
		ratings = data.NewRatingsRepo(omdbClient)
	}

	// Initialize use cases and services
	movieUseCase := biz.NewMovieUseCase(data.NewCatalogRepo(tmdbClient), ratings, log)
	movieService := service.NewMovieService(movieUseCase, log)

	// Initialize servers
	httpServer := server.NewHTTPServer(config, log, movieService)
	grpcServer := server.NewGRPCServer(config, log)

	// Start servers in goroutines
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	if grpcServer.Enabled() {
		go func() {
			if err := grpcServer.Start(); err != nil {
				log.Fatal("failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	log.Info("servers started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down servers...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if grpcServer.Enabled() {
		grpcServer.Stop()
	}

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("servers exited")
}
