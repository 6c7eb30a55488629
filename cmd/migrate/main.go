// Command migrate manages the database schema. Besides the tables it
// seeds the reference data the services expect: bank names, payment
// methods and the trx.* configuration rows.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/config"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/logger"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/migration"
)

func main() {
	var (
		path     = flag.String("path", "migrations", "path to the migrations directory")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if err := run(args, *path, log); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}

func run(args []string, path string, log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}
	log.Info("Migration CLI", zap.String("command", args[0]), zap.String("path", path))

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args, "step <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
		return nil
	case "force":
		v, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		return m.Force(v)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func intArg(args []string, hint string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: migrate %s", hint)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[1])
	}
	return n, nil
}

func usage() {
	fmt.Println(`Usage: migrate [flags] <command> [args]

Commands:
  up               Apply all pending migrations
  down             Roll back all migrations
  step <n>         Apply n migrations (negative rolls back)
  version          Print the current migration version
  force <version>  Force-set the migration version (repairs dirty state)

Flags:
  -path       Path to migrations directory (default: ./migrations)
  -log-level  Log level (debug, info, warn, error)`)
}
