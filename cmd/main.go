package main

import (
	"os"

	"clinic-scheduler/cmd/bootstrap"
	"clinic-scheduler/config"
	"clinic-scheduler/internal/infrastructure/database"
	"clinic-scheduler/internal/infrastructure/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "clinic-scheduler",
		Short: "Doctor availability and schedule grid API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to the .env file")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*envFile)
		},
	}
}

func serve(envFile string) error {
	// Initialize application with all dependencies
	app, err := bootstrap.New(envFile)
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return err
	}

	// Run the application
	app.Run()
	return nil
}

func migrateCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	var steps int

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadForMigration(*envFile)
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DB, log)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadForMigration(*envFile)
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DB, log, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func loadForMigration(envFile string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
