//go:build ignore

// check_database connects with the DB_* settings, prepares the catalogue
// table and reports how many products it holds.
//
//	go run scripts/check_database.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"prodexa/internal/catalog"
	"prodexa/internal/config"
	"prodexa/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	products, err := catalog.NewPostgresStore(pool, logger).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read catalogue: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s\n", dbName)
	fmt.Printf("Catalogue holds %d products\n", len(products))
}
