package migrate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/XavierPelle/sprintly/internal/infrastructure/auth"
	"github.com/XavierPelle/sprintly/internal/infrastructure/config"
	"github.com/XavierPelle/sprintly/internal/infrastructure/database"
	"github.com/XavierPelle/sprintly/internal/infrastructure/migration"
	"github.com/XavierPelle/sprintly/internal/infrastructure/persistence/seeds"
	"github.com/XavierPelle/sprintly/internal/infrastructure/repository"
	"github.com/XavierPelle/sprintly/internal/infrastructure/services"
	"github.com/XavierPelle/sprintly/internal/shared/biztime"
	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/db"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

const scriptsDir = "./internal/infrastructure/migration/scripts"

const (
	kindGoose     = "goose"
	kindVersioned = "versioned"
)

var (
	env        string
	configPath string
	name       string
	kind       string
	steps      int
	version    int
	seedFile   string
)

// downMigrator is implemented by the strategies that can roll back.
type downMigrator interface {
	MigrateDown(db *gorm.DB, steps int) error
}

// forcer is implemented by the strategies that track a dirty flag.
type forcer interface {
	Force(db *gorm.DB, version int) error
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, creating new migration files and loading seed data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newForceCommand(),
		newCreateCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version",
		Long:  `Set the recorded migration version without running scripts and clear the dirty flag left by a failed migration.`,
		RunE:  runForce,
	}

	cmd.Flags().IntVarP(&version, "version", "v", 0, "Version to record (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create new migration files with the specified name, either as a goose script or as a versioned up/down pair.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVarP(&kind, "kind", "k", kindGoose, "Migration kind (goose, versioned)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load seed data",
		Long:  `Insert users, sprints and tickets from a YAML seed file. Rows that already exist are skipped.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	if err := migration.NewManager(env, database.Get(), log).Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	strategy := migration.NewManager(env, database.Get(), log).GetStrategy()
	down, ok := strategy.(downMigrator)
	if !ok {
		return fmt.Errorf("down migration is not supported with the %s strategy", strategy.GetName())
	}

	if err := down.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("checking migration status", "environment", env)

	manager := migration.NewManager(env, database.Get(), log)
	info := manager.GetStrategyInfo()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Strategy:        %s\n", info["name"])

	gooseStrategy, ok := manager.GetStrategy().(*migration.GooseStrategy)
	if !ok {
		fmt.Fprintf(out, "  Description:     %s\n", info["description"])
		return nil
	}

	version, err := gooseStrategy.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := gooseStrategy.Status(database.Get()); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}

	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewManager(env, database.Get(), log).GetStrategy()
	f, ok := strategy.(forcer)
	if !ok {
		return fmt.Errorf("force is not supported with the %s strategy", strategy.GetName())
	}

	if err := f.Force(database.Get(), version); err != nil {
		log.Errorw("force migration version failed", "version", version, "error", err)
		return fmt.Errorf("force migration version failed: %w", err)
	}

	log.Infow("migration version forced", "version", version)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger()

	log.Infow("creating new migration", "name", name, "kind", kind)

	switch kind {
	case kindGoose:
		if err := migration.Create(filepath.Join(scriptsDir, kindGoose), name); err != nil {
			log.Errorw("failed to create migration", "error", err)
			return err
		}
	case kindVersioned:
		upPath, downPath, err := migration.NewGenerator(filepath.Join(scriptsDir, kindVersioned), log).CreateMigration(name)
		if err != nil {
			log.Errorw("failed to create migration", "error", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n  %s\n", upPath, downPath)
	default:
		return fmt.Errorf("unknown migration kind %q (want %s or %s)", kind, kindGoose, kindVersioned)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created successfully\n", name)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	f, err := seeds.LoadFile(seedFile)
	if err != nil {
		return err
	}

	gormDB := database.Get()
	ticketRepo := repository.NewTicketRepository(gormDB, log)
	seeder := seeds.NewSeeder(seeds.Repositories{
		Users:   repository.NewUserRepository(gormDB, log),
		Sprints: repository.NewSprintRepository(gormDB, log),
		Tickets: ticketRepo,
		History: repository.NewTicketHistoryRepository(gormDB, log),
		Tags:    repository.NewTagRepository(gormDB, log),
		Keys:    services.NewTicketKeyGenerator(ticketRepo),
		Tx:      db.NewTransactionManager(gormDB),
	}, auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost), cfg.Workflow.DefaultProjectPrefix, log)

	result, err := seeder.Seed(context.Background(), f)
	if err != nil {
		log.Errorw("seeding failed", "file", seedFile, "error", err)
		return fmt.Errorf("seeding failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed '%s' loaded\n", seedFile)
	fmt.Fprintf(out, "  Users:   %d created, %d skipped\n", result.UsersCreated, result.UsersSkipped)
	fmt.Fprintf(out, "  Sprints: %d created, %d skipped\n", result.SprintsCreated, result.SprintsSkipped)
	fmt.Fprintf(out, "  Tickets: %d created, %d skipped\n", result.TicketsCreated, result.TicketsSkipped)

	return nil
}
