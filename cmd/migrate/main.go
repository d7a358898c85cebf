// Команда migrate применяет и откатывает схему ledger в PostgreSQL или SQLite.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vladislavdragonenkov/posledger/internal/app"
	"github.com/vladislavdragonenkov/posledger/internal/storage/postgres"
	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlite"
	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlstore"
)

const defaultTimeout = 30 * time.Second

type migrator interface {
	MigrateUp(ctx context.Context, steps int) error
	MigrateDown(ctx context.Context, steps int) error
	MigrationStatus(ctx context.Context) (sqlstore.MigrationStatus, error)
	Close() error
}

// openMigrator подменяется в тестах.
var openMigrator = func(ctx context.Context, driver app.StorageDriver, dsn string) (migrator, error) {
	switch driver {
	case app.StorageDriverPostgres:
		return postgres.Open(ctx, dsn)
	case app.StorageDriverSQLite:
		return sqlite.Open(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q (use postgres|sqlite)", driver)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fail("%v", err)
	}
}

type options struct {
	driver string
	dsn    string
	steps  int
}

func newRootCmd() *cobra.Command {
	var opts options
	v := viper.New()
	v.SetEnvPrefix(app.EnvPrefix)
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage ledger schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "storage driver: postgres|sqlite (fallback: POSLEDGER_STORAGE_DRIVER)")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN or SQLite path (fallback: POSLEDGER_POSTGRES_DSN / POSLEDGER_SQLITE_PATH)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, v, opts, func(ctx context.Context, m migrator) error {
				if err := m.MigrateUp(ctx, opts.steps); err != nil {
					return fmt.Errorf("migrate up failed: %w", err)
				}
				return printStatus(ctx, cmd.OutOrStdout(), m, "migrate up ok")
			})
		},
	}
	up.Flags().IntVar(&opts.steps, "steps", 0, "number of migrations to apply (0 = all)")

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps := opts.steps
			if steps <= 0 {
				steps = 1
			}
			return withMigrator(cmd, v, opts, func(ctx context.Context, m migrator) error {
				if err := m.MigrateDown(ctx, steps); err != nil {
					return fmt.Errorf("migrate down failed: %w", err)
				}
				return printStatus(ctx, cmd.OutOrStdout(), m, "migrate down ok")
			})
		},
	}
	down.Flags().IntVar(&opts.steps, "steps", 1, "number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, v, opts, func(ctx context.Context, m migrator) error {
				return printStatus(ctx, cmd.OutOrStdout(), m, "migration status")
			})
		},
	}

	root.AddCommand(up, down, status)
	return root
}

// resolveTarget дополняет флаги переменными окружения.
func resolveTarget(v *viper.Viper, opts options) (app.StorageDriver, string, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.driver))
	if driver == "" {
		driver = strings.ToLower(strings.TrimSpace(v.GetString("storage_driver")))
	}
	if driver == "" {
		driver = string(app.StorageDriverPostgres)
	}

	dsn := strings.TrimSpace(opts.dsn)
	if dsn == "" {
		switch app.StorageDriver(driver) {
		case app.StorageDriverPostgres:
			dsn = strings.TrimSpace(v.GetString("postgres_dsn"))
		case app.StorageDriverSQLite:
			dsn = strings.TrimSpace(v.GetString("sqlite_path"))
		}
	}
	if dsn == "" {
		return "", "", fmt.Errorf("--dsn is required for %s", driver)
	}
	return app.StorageDriver(driver), dsn, nil
}

func withMigrator(cmd *cobra.Command, v *viper.Viper, opts options, fn func(context.Context, migrator) error) error {
	driver, dsn, err := resolveTarget(v, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), defaultTimeout)
	defer cancel()

	m, err := openMigrator(ctx, driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s store: %w", driver, err)
	}
	defer func() { _ = m.Close() }()

	return fn(ctx, m)
}

func printStatus(ctx context.Context, w io.Writer, m migrator, prefix string) error {
	st, err := m.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s: version=%d applied=%d\n", prefix, st.Version, st.Applied)
	return err
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
