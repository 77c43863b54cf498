package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"party-trivia-service/internal/app"
	"party-trivia-service/internal/config"
	"party-trivia-service/internal/generator"
	"party-trivia-service/internal/infra/deepseek"
	"party-trivia-service/internal/infra/memory"
	infraredis "party-trivia-service/internal/infra/redis"
	"party-trivia-service/internal/logger"
	"party-trivia-service/internal/metrics"
	transport "party-trivia-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New("trivia")
	m := metrics.New("server")

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	// A missing key is not a startup failure: only the generation endpoint
	// needs it, and the client reports it per call.
	client := deepseek.NewClient(deepseek.Config{
		BaseURL:     cfg.DeepSeek.BaseURL,
		APIKey:      os.Getenv("DEEPSEEK_API_KEY"),
		Model:       cfg.DeepSeek.Model,
		Temperature: cfg.DeepSeek.Temperature,
		HTTPClient: &http.Client{
			Timeout: config.Duration(cfg.DeepSeek.Timeout, 60*time.Second),
		},
	})

	var quizzes app.QuizRegistry
	var sessions app.SessionRegistry
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.Duration(cfg.Redis.TTL, 24*time.Hour)
		quizzes = infraredis.NewQuizRegistry(redisClient, ttl)
		sessions = infraredis.NewSessionRegistry(redisClient, ttl)
		log.WithField("addr", cfg.Redis.Addr).Info("using redis registries")
	} else {
		quizzes = memory.NewQuizRegistry()
		sessions = memory.NewSessionRegistry()
		log.Info("using in-memory registries")
	}

	service := app.NewService(quizzes, sessions, generator.New(client))
	router := transport.NewRouter(service, log, m)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting trivia service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
