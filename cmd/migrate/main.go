package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gocats/config"
	"gocats/internal/pkg/database"
	"gocats/internal/pkg/logger"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.LoadMigrateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.Environment == "development")
	if envErr != nil {
		log.Warn(".env file not found, using system environment only", nil)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "directory with migration files")
	flag.Parse()

	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("goose: failed to connect to DB", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("goose: failed to close DB", err)
		}
	}()

	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose: failed to set dialect", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // Default to 'up' if no command is provided
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatal("goose "+command+" failed", err)
	}

	log.Info("goose command succeeded", map[string]interface{}{"command": command, "dir": migrationsDir})
}
