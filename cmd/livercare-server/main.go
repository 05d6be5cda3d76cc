package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/livercare/livercare/internal/config"
	"github.com/livercare/livercare/internal/domain/account"
	"github.com/livercare/livercare/internal/domain/appointment"
	"github.com/livercare/livercare/internal/domain/doctor"
	"github.com/livercare/livercare/internal/domain/labreport"
	"github.com/livercare/livercare/internal/domain/patient"
	"github.com/livercare/livercare/internal/domain/prediction"
	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
	"github.com/livercare/livercare/internal/platform/classifier"
	"github.com/livercare/livercare/internal/platform/db"
	"github.com/livercare/livercare/internal/platform/metrics"
	"github.com/livercare/livercare/internal/platform/middleware"
	"github.com/livercare/livercare/internal/platform/openapi"
	"github.com/livercare/livercare/internal/platform/telemetry"
	"github.com/livercare/livercare/internal/platform/validation"
	"github.com/livercare/livercare/pkg/pagination"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	rootMessage  = "Liver Cirrhosis Backend is running!"
	maxBodyBytes = "1M"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "livercare-server",
		Short:   "Liver Cirrhosis clinical API server",
		Version: version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	withMigrator := func(fn func(m *db.Migrator) error) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		m, err := db.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(m)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *db.Migrator) error {
				applied, err := m.Up()
				if err != nil {
					return err
				}
				if !applied {
					fmt.Println("Schema is up to date.")
					return nil
				}
				v, _, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("Migrated to version %d.\n", v)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *db.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				fmt.Println("Rolled back one migration.")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *db.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version: %d\ndirty:   %t\n", v, dirty)
				return nil
			})
		},
	})

	return cmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fallback := newLogger(&config.Config{Env: os.Getenv("ENV")})
		fallback.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	secret, insecure := cfg.SigningSecret()
	if insecure {
		logger.Warn().Msg("SECRET_KEY is not set; signing tokens with the built-in development secret")
	}

	ctx := context.Background()

	// Tracing
	shutdownTracing := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    "livercare-server",
		ServiceVersion: version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
	}, logger)

	// Database
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Models
	firstModel, err := classifier.Load(cfg.FirstReportModelPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.FirstReportModelPath).Msg("failed to load first report model")
	}
	followupModel, err := classifier.Load(cfg.FollowupReportModelPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.FollowupReportModelPath).Msg("failed to load followup report model")
	}
	logger.Info().
		Str("first", firstModel.Name()).
		Str("followup", followupModel.Name()).
		Msg("prediction models loaded")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	tokens := auth.NewTokenService(secret, cfg.TokenTTL())

	predictionSvc, err := prediction.NewService(firstModel, followupModel, collector)
	if err != nil {
		logger.Fatal().Err(err).Msg("prediction models do not match the report schema")
	}

	e := newEcho(cfg, logger, collector, tokens)
	e.GET("/health/db", db.HealthHandler(pool, func() *db.PoolStats { return db.GetPoolStats(pool) }))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))

	account.NewHandler(account.NewService(account.NewUserRepoPG(pool), tokens, collector)).RegisterRoutes(e)
	patient.NewHandler(patient.NewService(patient.NewPatientRepoPG(pool))).RegisterRoutes(e)
	doctor.NewHandler(doctor.NewService(doctor.NewDoctorRepoPG(pool))).RegisterRoutes(e)
	appointment.NewHandler(appointment.NewService(appointment.NewAppointmentRepoPG(pool))).RegisterRoutes(e)
	labreport.NewHandler(labreport.NewService(labreport.NewLabReportRepoPG(pool))).RegisterRoutes(e)
	prediction.NewHandler(predictionSvc).RegisterRoutes(e)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("tracer shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newEcho builds the server with its global middleware chain and the
// public routes that need no store.
func newEcho(cfg *config.Config, logger zerolog.Logger, collector *metrics.Collector, tokens *auth.TokenService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)
	e.Validator = validation.New()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(collector.Middleware())
	e.Use(middleware.Logger(logger))
	e.Use(telemetry.TracingMiddleware(otel.GetTracerProvider()))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, pagination.TotalCountHeader},
	}))
	e.Use(echomw.BodyLimit(maxBodyBytes))

	// Auth middleware
	e.Use(auth.BearerAuth(tokens, logger, auth.AuthSkipper))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": rootMessage})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})

	docs := openapi.NewGenerator("Liver Cirrhosis API", version, "/")
	docs.Add(apiOperations()...)
	docs.RegisterRoutes(e)
	return e
}
