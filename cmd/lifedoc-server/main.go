package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/config"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/appointment"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/assistant"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/diary"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/family"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/measurement"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/news"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/report"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/domain/user"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/ai"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/blobstore"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/db"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/mailer"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/middleware"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/pkg/response"
)

// diarySummaryAdapter adapts the diary service to the assistant's
// DiarySummarizer interface, avoiding an import cycle between the packages.
type diarySummaryAdapter struct {
	svc *diary.Service
}

func (a *diarySummaryAdapter) SetSummary(ctx context.Context, userID, id uuid.UUID, summary string) error {
	_, err := a.svc.SetSummary(ctx, userID, id, summary)
	return err
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifedoc-server",
		Short: "Personal health record API server",
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

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Email delivery
	templates := mailer.NewTemplateEngine()
	var mail mailer.EmailSender
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		logger.Warn().Msg("SMTP_HOST not set; emails are recorded in memory only")
		mail = &mailer.MockEmailSender{}
	}

	// File storage
	var store blobstore.BlobStore
	if cfg.S3Bucket != "" {
		s3Store, err := blobstore.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize s3 storage")
		}
		store = s3Store
	} else {
		logger.Warn().Msg("S3_BUCKET not set; uploads are stored in memory")
		store = blobstore.NewMemoryStore()
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = response.HTTPErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	secret := []byte(cfg.JWTSecret)
	issuer := auth.NewTokenIssuer(secret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	// API groups: public routes first, everything else behind the JWT check.
	public := e.Group("/api")
	api := e.Group("/api", auth.Middleware(secret))

	// User / auth
	userRepo := user.NewRepoPG(pool)
	userSvc := user.NewService(userRepo, issuer, mail, templates, logger)
	userHandler := user.NewHandler(userSvc)
	userHandler.RegisterPublicRoutes(public)
	userHandler.RegisterRoutes(api)

	// Measurements
	measurementRepo := measurement.NewRepoPG(pool)
	measurementSvc := measurement.NewService(measurementRepo)
	measurement.NewHandler(measurementSvc).RegisterRoutes(api)

	// Diary
	diaryRepo := diary.NewRepoPG(pool)
	diarySvc := diary.NewService(diaryRepo)
	diary.NewHandler(diarySvc).RegisterRoutes(api)

	// Appointments
	apptRepo := appointment.NewRepoPG(pool)
	apptSvc := appointment.NewService(apptRepo)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)

	// Lab and doctor reports; doctor reports auto-link matching appointments.
	labRepo := report.NewLabReportRepoPG(pool)
	doctorRepo := report.NewDoctorReportRepoPG(pool)
	reportSvc := report.NewService(labRepo, doctorRepo, apptSvc)
	report.NewHandler(reportSvc).RegisterRoutes(api)

	// Family sharing
	familyRepo := family.NewRepoPG(pool)
	familySvc := family.NewService(familyRepo, mail, templates, logger)
	family.NewHandler(familySvc).RegisterRoutes(api)

	// AI assistant
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize gemini client")
		}
		consultationRepo := assistant.NewConsultationRepoPG(pool)
		scanRepo := assistant.NewPrescriptionScanRepoPG(pool)
		assistantSvc := assistant.NewService(consultationRepo, scanRepo, gemini, &diarySummaryAdapter{svc: diarySvc}, logger)
		assistant.NewHandler(assistantSvc).RegisterRoutes(api)
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; AI endpoints are disabled")
		api.Any("/ai/*", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "ai assistant is not configured")
		})
	}

	// News: public listing plus the background fetch job.
	newsRepo := news.NewRepoPG(pool)
	news.NewHandler(newsRepo).RegisterRoutes(public)
	fetcher := news.NewFetcher(newsRepo, cfg.NewsAPIURL, cfg.NewsAPIKey,
		time.Duration(cfg.NewsFetchHours)*time.Hour, logger)
	fetchCtx, fetchCancel := context.WithCancel(ctx)
	defer fetchCancel()
	if cfg.NewsAPIKey != "" {
		go fetcher.Run(fetchCtx)
	} else {
		logger.Warn().Msg("NEWS_API_KEY not set; news fetch job is disabled")
	}

	// Uploads
	blobstore.NewHandler(store).RegisterRoutes(api)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	fetchCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
