// Command migrate applies the SQL migrations in MIGRATIONS_PATH to the
// PostgreSQL (or Supabase) database in DATABASE_URL.
//
//	migrate up | down [n] | version | force <v>
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"handyhub/internal/config"
	"handyhub/internal/database"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: migrate up | down [n] | version | force <v>")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	m, err := database.Migrator(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		n := 1
		if len(args) > 1 {
			if n, err = strconv.Atoi(args[1]); err != nil || n <= 0 {
				return fmt.Errorf("down needs a positive step count, got %q", args[1])
			}
		}
		err = m.Steps(-n)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			slog.Info("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		slog.Info("current version", "version", v, "dirty", dirty)
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version")
		}
		v, perr := strconv.Atoi(args[1])
		if perr != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], perr)
		}
		err = m.Force(v)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("nothing to migrate")
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("migration applied", "command", args[0])
	return nil
}
