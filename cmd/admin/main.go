package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"contas/internal/domain/debit"
	"contas/internal/infrastructure/postgres"
	"contas/internal/shared/config"
)

const usage = `Contas Admin CLI - Management commands for the Contas API

Usage:
  admin <command> [options]

Commands:
  migrate   Apply the database schema and seed reference data
  sweep     Mark open installments past their due date as overdue

Examples:
  # Prepare a fresh database
  admin migrate

  # Run the overdue sweep immediately
  admin sweep

  # Run the sweep with a longer timeout
  admin sweep --timeout=5m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "sweep":
		runSweep(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "2m", "Timeout for the operation (e.g., 30s, 5m)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, db, cancel := connect(*timeoutStr)
	defer cancel()
	defer db.Close()

	startTime := time.Now()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migration completed in %v", time.Since(startTime))
}

func runSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "2m", "Timeout for the operation (e.g., 30s, 5m)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, db, cancel := connect(*timeoutStr)
	defer cancel()
	defer db.Close()

	debitRepo := postgres.NewDebitRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	debitService := debit.NewService(debitRepo, supplierRepo, catalogRepo)

	startTime := time.Now()
	swept, err := debitService.SweepOverdue(ctx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("Sweep completed in %v: %d installment(s) marked overdue", time.Since(startTime), swept)

	if swept > 0 {
		counts, err := debitService.OverdueCountsByUser(ctx)
		if err != nil {
			log.Fatalf("Failed to count overdue installments: %v", err)
		}
		for _, c := range counts {
			fmt.Printf("  user %d: %d overdue\n", c.UserID, c.Count)
		}
	}
}

// connect loads config, opens the database and returns a bounded context.
func connect(timeoutStr string) (context.Context, *postgres.DB, context.CancelFunc) {
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return ctx, db, cancel
}
