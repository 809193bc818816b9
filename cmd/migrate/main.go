package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"account-service/internal/config"
	"account-service/internal/db"
	"account-service/internal/logger"
)

type migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	m, err := db.NewMigrator(database, cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background(), m, *mode); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, m migrator, mode string) error {
	switch mode {
	case "up":
		return m.Up(ctx)
	case "down":
		return m.Down(ctx)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up' or 'down')", mode)
	}
}
