package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/RangiraDave/Test-copilot/config"
	"github.com/RangiraDave/Test-copilot/internal/console"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewUniversityRepository(pool)
	sh := console.New(repo, os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil {
		log.Fatalf("console: %v", err)
	}
}
