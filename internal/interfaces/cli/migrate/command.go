package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geofoncier/geofoncier/internal/infrastructure/config"
	"github.com/geofoncier/geofoncier/internal/infrastructure/database"
	"github.com/geofoncier/geofoncier/internal/infrastructure/migration"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

var (
	env        string
	configPath string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations. Development uses gorm AutoMigrate; test and production apply the embedded goose scripts.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of goose migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current goose version and the status of every script.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new goose SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv(connect bool) (logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if connect {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return logger.WithComponent("cli.migrate"), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	if err := migration.NewManager(env).Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := migration.NewGooseStrategy(migration.DefaultScriptsPath).MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if _, err := initEnv(true); err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGooseStrategy(migration.DefaultScriptsPath)

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nMigration Status:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Environment:     %s\n", env)
	fmt.Fprintf(cmd.OutOrStdout(), "  Current Version: %d\n", version)

	if err := strategy.Status(database.Get()); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log, err := initEnv(false)
	if err != nil {
		return err
	}

	scriptsPath, err := filepath.Abs(migration.DefaultScriptsPath)
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	if err := migration.NewGooseStrategy(scriptsPath).Create(name); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, scriptsPath)
	return nil
}
