package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/imposterparty/imposterd/internal/handlers/httpapi"
	playerRepo "github.com/imposterparty/imposterd/internal/repositories/player"
	sessionRepo "github.com/imposterparty/imposterd/internal/repositories/session"
	gameService "github.com/imposterparty/imposterd/internal/services/game"
	"github.com/imposterparty/imposterd/internal/topics"
)

// sweepInterval is how often stale waiting sessions are deleted
const sweepInterval = 5 * time.Minute

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create session repository")
	}

	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create player repository")
	}

	// Initialize the topic provider; without an API key the curated
	// fallback lists serve every game
	var provider topics.Provider
	if apiKey := getEnv("GEMINI_API_KEY", ""); apiKey != "" {
		gemini, err := topics.NewGemini(ctx, &topics.GeminiConfig{
			APIKey: apiKey,
			Model:  getEnv("GEMINI_MODEL", ""),
		})
		if err != nil {
			logger.WithError(err).Fatal("failed to create topic provider")
		}
		provider = gemini
		logger.Info("topic provider enabled")
	} else {
		logger.Warn("GEMINI_API_KEY not set, using fallback topics only")
	}

	// Initialize game service
	gameSvc, err := gameService.New(&gameService.Config{
		SessionRepo:   sessions,
		PlayerRepo:    players,
		TopicProvider: provider,
		Logger:        logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create game service")
	}

	// Initialize HTTP handler
	handler, err := httpapi.New(&httpapi.Config{
		GameService: gameSvc,
		Logger:      logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create HTTP handler")
	}

	server := &http.Server{
		Addr:              getEnv("LISTEN_ADDR", ":8080"),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Sweep stale waiting sessions in the background
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runSweeper(sweepCtx, gameSvc, logger)

	go func() {
		logger.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	stopSweep()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}

	logger.Info("server has been shut down")
}

func runSweeper(ctx context.Context, svc gameService.Service, logger *logrus.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out, err := svc.DeleteOldGames(ctx, &gameService.DeleteOldGamesInput{})
			if err != nil {
				logger.WithError(err).Error("stale session sweep failed")
				continue
			}
			if out.DeletedCount > 0 {
				logger.WithField("deleted", out.DeletedCount).Info("stale sessions removed")
			}
		}
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
