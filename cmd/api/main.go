// Package main is the entrypoint for the TravelEase API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/travelease/travelease/internal/auth"
	"github.com/travelease/travelease/internal/cache"
	"github.com/travelease/travelease/internal/config"
	"github.com/travelease/travelease/internal/handler"
	"github.com/travelease/travelease/internal/metrics"
	"github.com/travelease/travelease/internal/middleware"
	"github.com/travelease/travelease/internal/repository"
	"github.com/travelease/travelease/internal/server"
	"github.com/travelease/travelease/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Closed via the server's shutdown hooks after the listener drains.

	recorder := metrics.NewInMemory()

	userService := service.NewUserService(repo, recorder)
	vehicleService := service.NewVehicleService(repo, cacheClient, recorder)
	bookingService := service.NewBookingService(repo, recorder)

	var verifier auth.Verifier
	var tokenHandler *handler.TokenHandler
	switch cfg.AuthStrategy {
	case config.AuthStrategyLocal:
		local := auth.NewLocalVerifier([]byte(cfg.JWTSecret))
		verifier = local
		tokenHandler = handler.NewTokenHandler(local, cfg.TokenTTL, logger)
	case config.AuthStrategyIdP:
		verifier = auth.NewIdPVerifier(cfg.IdPUserinfoURL, cacheClient)
	}
	logger.Info("auth strategy selected", "strategy", cfg.AuthStrategy)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, logger)
	bookingHandler := handler.NewBookingHandler(bookingService, logger)

	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		users:    userHandler,
		vehicles: vehicleHandler,
		bookings: bookingHandler,
		token:    tokenHandler,
		verifier: verifier,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(r, cfg.AppPort, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, logger)
	srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })
	srv.OnShutdown("postgres", func(context.Context) error { repo.Close(); return nil })

	logger.Info("starting server", "port", cfg.AppPort, "env", cfg.AppEnv)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	users    *handler.UserHandler
	vehicles *handler.VehicleHandler
	bookings *handler.BookingHandler
	token    *handler.TokenHandler
	verifier auth.Verifier
	recorder metrics.Recorder
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
// Public routes serve the marketplace browsing surface; everything
// owner-scoped sits behind the auth guard.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	r.Get("/", deps.base.Root)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	if deps.token != nil {
		r.Post("/auth/token", deps.token.Issue)
	}

	// Public browsing surface
	r.Get("/users", deps.users.List)
	r.Post("/users", deps.users.Create)
	r.Get("/vehicles", deps.vehicles.List)
	r.Get("/recentvehicles", deps.vehicles.Recent)
	r.Get("/vehicledetails/{id}", deps.vehicles.Get)

	// Owner-scoped surface
	authCfg := middleware.AuthConfig{
		Verifier: deps.verifier,
		Logger:   deps.logger,
		Metrics:  deps.recorder,
	}
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authCfg))

		r.Get("/users/me", deps.users.GetMe)
		r.Patch("/users/me", deps.users.UpdateMe)

		r.Post("/vehicles", deps.vehicles.Create)
		r.Get("/myvehicles", deps.vehicles.ListMine)
		r.Patch("/myvehicles/{id}", deps.vehicles.UpdateMine)
		r.Delete("/myvehicles/{id}", deps.vehicles.DeleteMine)

		r.Post("/bookings", deps.bookings.Create)
		r.Get("/bookings", deps.bookings.ListMine)
		r.Delete("/bookings/{id}", deps.bookings.DeleteMine)
	})

	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

// redactURL strips credentials from a connection URL for logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			parsed.User = url.User(username)
		} else {
			parsed.User = url.User("redacted")
		}
	}

	return parsed.String()
}

// sanitizeError removes secret URLs from an error message before it is
// logged.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return msg
}
