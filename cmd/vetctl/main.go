// Command vetctl runs maintenance tasks against the clinics database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/config"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/database"
	"github.com/JorgeWendell/clinics/pkg/jwt"
	applogger "github.com/JorgeWendell/clinics/pkg/logger"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "vetctl",
		Short:        "Clinic backend maintenance commands",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("VET_CONFIG"), "Path to the config file")

	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(slotsCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every subcommand needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func open(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
	e.logger.Sync()
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			sqlDB, err := e.db.DB()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(sqlDB, e.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func slotsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print a doctor's open slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctorID, _ := cmd.Flags().GetString("doctor")
			date, _ := cmd.Flags().GetString("date")
			if doctorID == "" || date == "" {
				return fmt.Errorf("--doctor and --date are required")
			}

			e, err := open(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := context.Background()
			repo := repository.NewRepository(e.db)

			doctor, err := repo.Doctor.GetByID(ctx, doctorID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("doctor %s not found", doctorID)
				}
				return err
			}

			svc, err := service.NewService(e.cfg, repo, jwt.NewManager(&e.cfg.Auth), nil, e.logger)
			if err != nil {
				return err
			}
			result, err := svc.Appointment.AvailableSlots(ctx, doctor.ClinicID, doctorID, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s) on %s\n", doctor.Name, doctor.Speciality, result.Date)
			if len(result.Slots) == 0 {
				fmt.Fprintln(out, "no open slots")
				return nil
			}
			fmt.Fprintln(out, strings.Join(result.Slots, " "))
			return nil
		},
	}
	cmd.Flags().String("doctor", "", "Doctor id")
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD")
	return cmd
}
