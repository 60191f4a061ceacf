package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/alexvr/portfolio-backend/config"
)

// Dependencies carries everything the HTTP surface consumes. Optional
// collaborators (Assets, Stats, Notifier) may be nil; their endpoints then
// report a configuration error instead of panicking.
type Dependencies struct {
	Config   map[string]string
	Projects ProjectStore
	Messages MessageStore
	Assets   AssetStore
	Stats    StatsProvider
	Verifier TokenVerifier
	Auth     SignInService
	Notifier MessageNotifier
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(deps Dependencies) (Server, error) {
	if deps.Projects == nil || deps.Messages == nil {
		return Server{}, fmt.Errorf("project and message stores are required")
	}

	c := deps.Config
	if c == nil {
		c = config.New()
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	readTimeout := config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 60*time.Second)
	writeTimeout := config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 60*time.Second)
	idleTimeout := config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := strings.Split(config.GetString(router.config, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := initializeHandlers(deps)
	authMiddleware := newAuthMiddleware(deps.Verifier)

	contactRPS := config.GetInt(router.config, "CONTACT_RATE_PER_MINUTE", 6)
	contactLimit := rateLimitMiddleware(rate.Every(time.Minute/time.Duration(contactRPS)), contactRPS)

	setupRoutes(chiRouter, handlers, authMiddleware, contactLimit, router.startupTime)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HTTP server gracefully shut down")
	}
}
