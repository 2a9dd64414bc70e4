// Package console is the command-line adapter: it parses flags, wires the
// output adapters into the application services and prints their reports.
package console

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"arbfix/internal/application"
	"arbfix/internal/config"
	"arbfix/internal/domain/entities"
	"arbfix/internal/infrastructure/arb"
	"arbfix/internal/infrastructure/database"
	"arbfix/internal/infrastructure/sqlfile"
	"arbfix/internal/infrastructure/sqlpatches"
	"arbfix/internal/infrastructure/supabase"
	"arbfix/internal/infrastructure/tables"
	"arbfix/internal/ports/output"
)

// App holds what every command needs.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	printer *Printer
	stdout  io.Writer

	// migrate is swapped in tests.
	migrate func(dsn, dir string, log *zap.Logger) (uint, error)
}

func NewApp(cfg *config.Config, log *zap.Logger, t output.T, stdout io.Writer) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		printer: NewPrinter(stdout, t),
		stdout:  stdout,
		migrate: database.RunMigrations,
	}
}

// CLI returns the urfave/cli application.
func (a *App) CLI() *cli.App {
	return &cli.App{
		Name:      "arbfix",
		Usage:     "maintenance tasks for the app's ARB localization files and database functions",
		Writer:    a.stdout,
		ErrWriter: a.stdout,
		Commands: []*cli.Command{
			a.updateKeyCommand(),
			a.tablesCommand(),
			a.submitSQLCommand(),
			a.applySQLCommand(),
		},
	}
}

func (a *App) updateKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "update-key",
		Usage: "overwrite one key in every ARB file listed by a translation table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "table", Aliases: []string{"t"}, Usage: "built-in table name (see \"arbfix tables\")"},
			&cli.PathFlag{Name: "table-file", Aliases: []string{"f"}, Usage: "TOML translation table"},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "override the table's target key"},
			&cli.PathFlag{Name: "dir", Aliases: []string{"d"}, Usage: "directory holding the ARB files", Value: a.cfg.L10nDir},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "report what would change without writing"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show old and new values"},
		},
		Action: func(c *cli.Context) error {
			table, err := loadTable(c.String("table"), c.Path("table-file"))
			if err != nil {
				return err
			}
			if key := c.String("key"); key != "" {
				table = table.WithKey(key)
			}

			svc := application.NewLocalizationService(arb.NewFileStore(), a.log)
			dryRun := c.Bool("dry-run")

			a.log.Debug("running translation table", zap.String("table", table.Name), zap.String("key", table.Key), zap.String("dir", c.Path("dir")))
			a.printer.Header(table.Key, dryRun)
			report, err := svc.UpdateKey(c.Context, c.Path("dir"), table, dryRun)
			if report != nil {
				a.printer.Report(report, c.Bool("verbose"))
			}
			return err
		},
	}
}

func loadTable(name, file string) (entities.TranslationTable, error) {
	switch {
	case name != "" && file != "":
		return entities.TranslationTable{}, errors.New("use either --table or --table-file, not both")
	case file != "":
		return tables.LoadFile(file)
	case name != "":
		return tables.Builtin(name)
	}
	return entities.TranslationTable{}, errors.New("a translation table is required: --table or --table-file")
}

func (a *App) tablesCommand() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "list the built-in translation tables",
		Action: func(c *cli.Context) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKEY\tFILES")
			for _, name := range tables.BuiltinNames() {
				t, err := tables.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\n", t.Name, t.Key, len(t.Entries))
			}
			return tw.Flush()
		},
	}
}

func (a *App) submitSQLCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit-sql",
		Usage:     "push SQL function patches to the hosted database, saving them for manual execution on failure",
		ArgsUsage: "[file.sql...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "patch", Aliases: []string{"p"}, Usage: "built-in patch name, may be repeated (default: all)"},
			&cli.PathFlag{Name: "sql-dir", Usage: "where unapplied patches are saved", Value: a.cfg.SQLDir},
		},
		Action: func(c *cli.Context) error {
			patches, err := loadPatches(c.StringSlice("patch"), c.Args().Slice())
			if err != nil {
				return err
			}

			var executors []output.SQLExecutor
			supaErr := a.cfg.RequireSupabase()
			if supaErr == nil {
				executors = append(executors, supabase.NewRPCExecutors(a.cfg.SupabaseURL, a.cfg.SupabaseKey, a.cfg.HTTPTimeout)...)
			} else if a.cfg.SupabaseURL != "" {
				a.log.Warn("skipping RPC endpoints", zap.Error(supaErr))
			}
			if a.cfg.DatabaseURL != "" {
				if err := a.cfg.RequireDatabase(); err != nil {
					return err
				}
				pool, err := database.NewPool(c.Context, a.cfg.DatabaseURL, a.log)
				if err != nil {
					a.log.Warn("direct database connection unavailable", zap.Error(err))
				} else {
					defer pool.Close()
					executors = append(executors, database.NewExecutor(pool, a.cfg.DatabaseLabel()))
				}
			} else if supaErr != nil {
				return supaErr
			}

			svc := application.NewSQLPatchService(executors, sqlfile.NewArchive(c.Path("sql-dir")), a.log)
			a.printer.line("sql_header", map[string]any{"Count": len(patches), "URL": a.target()})
			fmt.Fprintln(a.stdout)
			results, err := svc.Submit(c.Context, patches)
			a.printer.Submission(results, supabase.DashboardSQLURL(a.cfg.SupabaseURL))
			return err
		},
	}
}

func (a *App) target() string {
	if a.cfg.SupabaseURL != "" {
		return a.cfg.SupabaseURL
	}
	return a.cfg.DatabaseLabel()
}

func loadPatches(names, files []string) ([]entities.SQLPatch, error) {
	var out []entities.SQLPatch
	for _, n := range names {
		p, err := sqlpatches.Builtin(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	for _, f := range files {
		p, err := sqlpatches.LoadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return sqlpatches.Defaults()
	}
	return out, nil
}

func (a *App) applySQLCommand() *cli.Command {
	return &cli.Command{
		Name:  "apply-sql",
		Usage: "apply patches saved by submit-sql over a direct DATABASE_URL connection",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "sql-dir", Usage: "directory of saved patches", Value: a.cfg.SQLDir},
		},
		Action: func(c *cli.Context) error {
			if err := a.cfg.RequireDatabase(); err != nil {
				return err
			}
			dir, err := filepath.Abs(c.Path("sql-dir"))
			if err != nil {
				return err
			}
			version, err := a.migrate(a.cfg.DatabaseURL, dir, a.log)
			if err != nil {
				return err
			}
			a.printer.line("apply_done", map[string]any{"Version": version})
			return nil
		},
	}
}
