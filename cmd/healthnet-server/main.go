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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthnet/healthnet/internal/config"
	"github.com/healthnet/healthnet/internal/domain/appointment"
	"github.com/healthnet/healthnet/internal/domain/audit"
	"github.com/healthnet/healthnet/internal/domain/clinical"
	"github.com/healthnet/healthnet/internal/domain/identity"
	"github.com/healthnet/healthnet/internal/domain/patient"
	"github.com/healthnet/healthnet/internal/domain/staff"
	"github.com/healthnet/healthnet/internal/platform/auth"
	"github.com/healthnet/healthnet/internal/platform/db"
	"github.com/healthnet/healthnet/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthnet-server",
		Short: "HealthNet patient records server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HealthNet API server",
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

// seedCmd creates a demo hospital plus doctor and nurse accounts so a fresh
// install has somewhere to register patients against.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo hospital with doctor and nurse accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			accountSvc := identity.NewService(identity.NewAccountRepoPG(pool))
			staffSvc := staff.NewService(
				staff.NewHospitalRepoPG(pool),
				staff.NewDoctorRepoPG(pool),
				staff.NewNurseRepoPG(pool),
			)

			hospital := &staff.Hospital{Name: "General Hospital"}
			if err := staffSvc.CreateHospital(ctx, hospital); err != nil {
				return fmt.Errorf("seed hospital: %w", err)
			}

			doctorAccount, err := accountSvc.CreateAccount(ctx, "drdemo", "changeme123", true)
			if err != nil {
				return fmt.Errorf("seed doctor account: %w", err)
			}
			if err := staffSvc.CreateDoctor(ctx, &staff.Doctor{
				AccountID:  doctorAccount.ID,
				HospitalID: hospital.ID,
			}); err != nil {
				return fmt.Errorf("seed doctor: %w", err)
			}

			nurseAccount, err := accountSvc.CreateAccount(ctx, "nursedemo", "changeme123", true)
			if err != nil {
				return fmt.Errorf("seed nurse account: %w", err)
			}
			if err := staffSvc.CreateNurse(ctx, &staff.Nurse{
				AccountID:  nurseAccount.ID,
				HospitalID: hospital.ID,
			}); err != nil {
				return fmt.Errorf("seed nurse: %w", err)
			}

			fmt.Println("Seeded hospital 'General Hospital' with accounts drdemo and nursedemo.")
			return nil
		},
	}
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

	sessionCfg := auth.SessionConfig{
		SigningKey: []byte(cfg.SessionSigningKey),
		TTL:        cfg.SessionTTL(),
		Issuer:     "healthnet",
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(auth.SessionMiddleware(sessionCfg))

	// Services
	auditSvc := audit.NewService(audit.NewRepoPG(pool), logger)
	accountSvc := identity.NewService(identity.NewAccountRepoPG(pool))
	staffSvc := staff.NewService(
		staff.NewHospitalRepoPG(pool),
		staff.NewDoctorRepoPG(pool),
		staff.NewNurseRepoPG(pool),
	)
	patientSvc := patient.NewService(
		accountSvc,
		staffSvc,
		patient.NewPatientRepoPG(pool),
		patient.NewInsuranceRepoPG(pool),
		patient.NewProfileRepoPG(pool),
		patient.NewMedicalRepoPG(pool),
		logger,
	)
	appointmentSvc := appointment.NewService(appointment.NewRepoPG(pool))
	clinicalSvc := clinical.NewService(
		clinical.NewPrescriptionRepoPG(pool),
		clinical.NewMedTestRepoPG(pool),
	)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Browser-facing routes
	identity.NewHandler(accountSvc, auditSvc, staffSvc, sessionCfg).RegisterRoutes(e)
	patient.NewHandler(patientSvc, appointmentSvc, auditSvc).RegisterRoutes(e)
	appointment.NewHandler(appointmentSvc, auditSvc).RegisterRoutes(e)

	// API routes
	apiV1 := e.Group("/api/v1")
	staff.NewHandler(staffSvc).RegisterRoutes(apiV1)
	clinical.NewHandler(clinicalSvc, auditSvc).RegisterRoutes(apiV1)
	audit.NewHandler(auditSvc).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
