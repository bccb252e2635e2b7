package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/blog/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/blog/internal/config"
)

const usage = "usage: migrations [up|down|status]"

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading the environment only")
	}

	// Only the postgres settings are needed here, so the full validation
	// (JWT secret and so on) is skipped.
	cfg, err := config.Parse()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	switch command {
	case "up":
		err = postgres.Migrate(ctx, db)
	case "down":
		err = postgres.Rollback(ctx, db)
	case "status":
		err = postgres.MigrationStatus(ctx, db)
	default:
		log.Fatal(usage)
	}
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("Migrations executed successfully.")
}
