package main

import (
	"context"
	"errors"
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

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/emergency"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/maternity"
	"github.com/hms/hms/internal/domain/physiotherapy"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/notification"
	"github.com/hms/hms/internal/workflow"
)

// registryDirectory adapts the identity service to the scheduling
// PatientDirectory interface, avoiding a direct import between the two
// domains.
type registryDirectory struct {
	svc *identity.Service
}

func (d *registryDirectory) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := d.svc.GetPatient(ctx, id); err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// managerNotifier delivers scheduling events through the notification
// manager using the built-in appointment templates.
type managerNotifier struct {
	mgr *notification.Manager
}

func (n *managerNotifier) Notify(ctx context.Context, e scheduling.Event) error {
	_, err := n.mgr.SendFromTemplate(ctx, e.Kind, e.Params, e.Recipient)
	return err
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
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
		Short: "Start the HMS API server",
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
	if os.Getenv("ENV") == "development" {
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

	txr := db.NewTxRunner(pool)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.JWTSecret),
		}))
	}

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")

	// Notification engine with mock senders; real SMS/email gateways plug in
	// behind the EmailSender/SMSSender interfaces.
	notifMgr := notification.NewManager(
		&notification.MockEmailSender{},
		&notification.MockSMSSender{},
		notification.NewTemplateEngine(),
	)
	notifHandler := notification.NewHandler(notifMgr)
	notifHandler.RegisterRoutes(apiV1)

	// Identity domain
	registryPatientRepo := identity.NewPatientRepoPG(pool)
	staffRepo := identity.NewStaffRepoPG(pool)
	identitySvc := identity.NewService(registryPatientRepo, staffRepo)
	identityHandler := identity.NewHandler(identitySvc)
	identityHandler.RegisterRoutes(apiV1)

	// Scheduling domain
	apptRepo := scheduling.NewAppointmentRepoPG(pool)
	schedSvc := scheduling.NewService(
		apptRepo,
		&registryDirectory{svc: identitySvc},
		&managerNotifier{mgr: notifMgr},
		logger,
	)
	schedHandler := scheduling.NewHandler(schedSvc)
	schedHandler.RegisterRoutes(apiV1)

	// Emergency domain
	edPatientRepo := emergency.NewPatientRepoPG(pool)
	triageRepo := emergency.NewTriageRepoPG(pool)
	bedRepo := emergency.NewBedRepoPG(pool)
	orderRepo := emergency.NewOrderRepoPG(pool)
	edSvc := emergency.NewService(edPatientRepo, triageRepo, bedRepo, orderRepo, txr)
	edHandler := emergency.NewHandler(edSvc)
	edHandler.RegisterRoutes(apiV1)

	// Maternity domain
	matPatientRepo := maternity.NewPatientRepoPG(pool)
	visitRepo := maternity.NewVisitRepoPG(pool)
	laborRepo := maternity.NewLaborRepoPG(pool)
	deliveryRepo := maternity.NewDeliveryRepoPG(pool)
	newbornRepo := maternity.NewNewbornRepoPG(pool)
	checkupRepo := maternity.NewCheckupRepoPG(pool)
	matSvc := maternity.NewService(matPatientRepo, visitRepo, laborRepo, deliveryRepo, newbornRepo, checkupRepo, txr)
	matHandler := maternity.NewHandler(matSvc)
	matHandler.RegisterRoutes(apiV1)

	// Physiotherapy domain
	physioPatientRepo := physiotherapy.NewPatientRepoPG(pool)
	assessmentRepo := physiotherapy.NewAssessmentRepoPG(pool)
	sessionRepo := physiotherapy.NewSessionRepoPG(pool)
	therapistRepo := physiotherapy.NewTherapistRepoPG(pool)
	equipmentRepo := physiotherapy.NewEquipmentRepoPG(pool)
	physioSvc := physiotherapy.NewService(physioPatientRepo, assessmentRepo, sessionRepo, therapistRepo, equipmentRepo, txr)
	physioHandler := physiotherapy.NewHandler(physioSvc)
	physioHandler.RegisterRoutes(apiV1)

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
