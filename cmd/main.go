package main

import (
	"fmt"
	"os"

	"hospital-scheduling/cmd/bootstrap"
	"hospital-scheduling/config"
	"hospital-scheduling/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hospital-scheduling",
		Short:         "Doctor availability and appointment slot service",
		SilenceUsage:  true,
		SilenceErrors: true,
		// no subcommand behaves like serve
		RunE: runServe,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})
	root.AddCommand(newMigrateCmd())
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run()
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(database.MigrateUp)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *gorm.DB, log *logrus.Logger) error {
				return database.MigrateDown(db, log, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 rolls back everything)")
	migrateCmd.AddCommand(down)

	return migrateCmd
}

// withDatabase opens a connection for a one-off command and closes it afterwards
func withDatabase(fn func(db *gorm.DB, log *logrus.Logger) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := bootstrap.NewLogger(cfg)

	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.App.Env == "production")
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	return fn(db, log)
}
