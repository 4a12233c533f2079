// Command migrate manages the reporting database schema.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fieldops/backend/internal/infrastructure/config"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "migrations", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	// create and list work on files alone, no database needed.
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("usage: migrate create <name>")
		}
		p, err := migration.Create(dir, args[1])
		if err != nil {
			log.Fatal("create migration", zap.Error(err))
		}
		log.Info("migration created",
			zap.String("version", p.Version),
			zap.String("up", p.UpPath),
			zap.String("down", p.DownPath))
		return
	case "list":
		names, err := migration.List(dir)
		if err != nil {
			log.Fatal("list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			log.Info("no migrations found", zap.String("dir", dir))
			return
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("ping database", zap.Error(err))
	}

	mg, err := migration.New(db, dir, log)
	if err != nil {
		log.Fatal("init migrator", zap.Error(err))
	}
	defer mg.Close()

	switch command {
	case "up":
		if err := mg.Up(); err != nil {
			log.Fatal("migrate up", zap.Error(err))
		}
	case "down":
		if err := mg.Down(); err != nil {
			log.Fatal("migrate down", zap.Error(err))
		}
	case "step":
		if len(args) < 2 {
			log.Fatal("usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("step count must be an integer", zap.String("value", args[1]))
		}
		if err := mg.Steps(n); err != nil {
			log.Fatal("migrate step", zap.Error(err))
		}
	case "version":
		v, dirty, err := mg.Version()
		if err != nil {
			log.Fatal("read version", zap.Error(err))
		}
		if v == 0 {
			log.Info("no migrations applied")
			return
		}
		log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case "force":
		if len(args) < 2 {
			log.Fatal("usage: migrate force <version>")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("version must be an integer", zap.String("value", args[1]))
		}
		if err := mg.Force(v); err != nil {
			log.Fatal("force version", zap.Error(err))
		}
	default:
		log.Error("unknown command", zap.String("command", command))
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`usage: migrate [-path dir] [-log-level level] <command>

commands:
  up               apply all pending migrations
  down             roll back all migrations
  step <n>         move n migrations (negative rolls back)
  version          print the applied schema version
  force <version>  overwrite the recorded version (clears a dirty flag)
  create <name>    write an empty up/down migration pair
  list             print available migration pairs

database settings come from config.toml or FIELDOPS_DATABASE_* variables`)
}
