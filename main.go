package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/alexvr/portfolio-backend/api"
	"github.com/alexvr/portfolio-backend/assets"
	"github.com/alexvr/portfolio-backend/config"
	"github.com/alexvr/portfolio-backend/services"
	"github.com/alexvr/portfolio-backend/store"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	configureLogging(c)

	ctx := context.Background()

	projectID := config.GetString(c, "FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		log.Fatal().Msg("FIREBASE_PROJECT_ID is required")
	}
	bucketName := config.GetString(c, "STORAGE_BUCKET", "")

	var appOpts []option.ClientOption
	if credentialsFile := config.GetString(c, "GOOGLE_APPLICATION_CREDENTIALS", ""); credentialsFile != "" {
		appOpts = append(appOpts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: bucketName,
	}, appOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing Firebase app")
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing Firestore client")
	}
	defer firestoreClient.Close()

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing Firebase auth client")
	}

	repos := store.New(firestoreClient)

	var assetStore api.AssetStore
	if bucketName != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing storage client")
		}
		bucketHandle, err := storageClient.DefaultBucket()
		if err != nil {
			log.Fatal().Err(err).Msg("Error resolving storage bucket")
		}
		assetStore = assets.NewBucket(bucketName, bucketHandle)
	} else {
		log.Warn().Msg("STORAGE_BUCKET not set, image uploads disabled")
	}

	statsCache := newStatsCache(ctx, c)
	githubService := services.NewGitHubService(
		config.GetString(c, "GITHUB_USERNAME", ""),
		config.GetString(c, "GITHUB_TOKEN", ""),
		statsCache,
	)

	notifier := services.NewContactNotifier(
		config.GetString(c, "RESEND_API_KEY", ""),
		config.GetString(c, "NOTIFY_FROM_EMAIL", ""),
		config.GetString(c, "NOTIFY_TO_EMAIL", ""),
	)
	var messageNotifier api.MessageNotifier
	if notifier.Enabled() {
		messageNotifier = notifier
	} else {
		log.Warn().Msg("Resend notifier not configured, contact notifications disabled")
	}

	authService := services.NewAuthService(config.GetString(c, "FIREBASE_WEB_API_KEY", ""))

	server, err := api.NewServer(api.Dependencies{
		Config:   c,
		Projects: repos.Projects(),
		Messages: repos.Messages(),
		Assets:   assetStore,
		Stats:    githubService,
		Verifier: authClient,
		Auth:     authService,
		Notifier: messageNotifier,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	if config.GetString(c, "GITHUB_USERNAME", "") != "" {
		scheduler := startStatsWarmup(githubService)
		defer scheduler.Stop()
	} else {
		log.Warn().Msg("GITHUB_USERNAME not set, stats endpoint will report an error")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func configureLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// newStatsCache prefers Redis when REDIS_ADDR is set and reachable, and
// falls back to the in-process cache otherwise.
func newStatsCache(ctx context.Context, c map[string]string) services.StatsCache {
	addr := config.GetString(c, "REDIS_ADDR", "")
	if addr == "" {
		return services.NewMemoryCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetString(c, "REDIS_PASSWORD", ""),
		DB:       config.GetInt(c, "REDIS_DB", 0),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis unreachable, using in-memory stats cache")
		return services.NewMemoryCache()
	}

	log.Info().Str("addr", addr).Msg("Using Redis stats cache")
	return services.NewRedisCache(client)
}

// startStatsWarmup refreshes the GitHub stats cache every hour so public
// requests rarely pay the upstream fetch.
func startStatsWarmup(github *services.GitHubService) *cron.Cron {
	scheduler := cron.New()
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := github.Stats(ctx); err != nil {
			log.Warn().Err(err).Msg("Stats warm-up failed")
		}
	}

	if _, err := scheduler.AddFunc("@hourly", warm); err != nil {
		log.Warn().Err(err).Msg("Failed to schedule stats warm-up")
		return scheduler
	}
	scheduler.Start()
	go warm()

	return scheduler
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
