package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"clinic-scheduler/config"
	"clinic-scheduler/internal/infrastructure/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		command = flag.String("command", "", "Migration command: up, down, version, force")
		steps   = flag.Int("steps", 0, "Number of migration steps (for up/down)")
		version = flag.Int("version", 0, "Migration version (for force)")
	)
	flag.Parse()

	if *command == "" {
		fmt.Println("Usage: go run ./cmd/migrate -command [up|down|version|force] [options]")
		fmt.Println("Commands:")
		fmt.Println("  up             - Apply all pending migrations")
		fmt.Println("  down           - Rollback migrations (one step by default)")
		fmt.Println("  version        - Show current migration version")
		fmt.Println("  force          - Force set migration version")
		fmt.Println("")
		fmt.Println("Options:")
		fmt.Println("  -steps N       - Number of steps for up/down")
		fmt.Println("  -version N     - Version number for force")
		os.Exit(1)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", database.DSN(cfg.DB, cfg.App.Timezone))
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		logrus.Fatalf("Failed to create migration instance: %v", err)
	}

	switch *command {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
		report(err, "Migrations applied successfully", "No migrations to apply")

	case "down":
		n := 1
		if *steps > 0 {
			n = *steps
		}
		err = m.Steps(-n)
		report(err, "Migrations rolled back successfully", "No migrations to rollback")

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			logrus.Fatalf("Failed to get version: %v", err)
		}
		logrus.WithField("dirty", dirty).Infof("Current version: %d", v)

	case "force":
		if *version == 0 {
			logrus.Fatal("Version number required for force command")
		}
		if err := m.Force(*version); err != nil {
			logrus.Fatalf("Force migration failed: %v", err)
		}
		logrus.Infof("Migration version forced to %d", *version)

	default:
		logrus.Fatalf("Unknown command: %s", *command)
	}
}

func report(err error, done, noChange string) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logrus.Info(noChange)
	case err != nil:
		logrus.Fatalf("Migration failed: %v", err)
	default:
		logrus.Info(done)
	}
}
