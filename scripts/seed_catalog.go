//go:build ignore

// seed_catalog writes a sample product catalogue and an operator users file.
//
//	go run scripts/seed_catalog.go [-catalog data/products.json] [-users data/users.json]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"prodexa/internal/auth"
	"prodexa/internal/catalog"
	"prodexa/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func main() {
	catalogPath := flag.String("catalog", "data/products.json", "catalogue file to write")
	usersPath := flag.String("users", "data/users.json", "users file to write")
	username := flag.String("user", "admin", "operator username")
	password := flag.String("password", "admin123", "operator password")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	products := []model.Product{
		{Name: "Soap", Price: decimal.RequireFromString("50.00"), Stock: 120, Category: "Grocery", Brand: "Mysore Sandal", Unit: "pcs"},
		{Name: "Oil", Price: decimal.RequireFromString("250.00"), Stock: 40, Category: "Grocery", Brand: "Fortune", Unit: "litre"},
		{Name: "Rice", Price: decimal.RequireFromString("62.50"), Stock: 300, Category: "Grocery", Unit: "kg"},
		{Name: "T-Shirt", Price: decimal.RequireFromString("399.00"), Stock: 25, Category: "Clothes", SKU: "TS-001"},
		{Name: "Wallet", Price: decimal.RequireFromString("799.00"), Stock: 10, Category: "Accessories"},
		{Name: "Electric Kettle", Price: decimal.RequireFromString("1499.00"), Stock: 6, Category: "Home Appliances", Notes: "1 year warranty"},
		{Name: "Earphones", Price: decimal.RequireFromString("999.99"), Stock: 15, Category: "Electronics"},
		{Name: "Notebook", Price: decimal.RequireFromString("35.50"), Stock: 0, Category: "Stationery"},
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			logger.Fatal().Err(err).Str("product", p.Name).Msg("invalid sample product")
		}
	}

	store := catalog.NewJSONStore(*catalogPath, logger)
	if err := store.Save(context.Background(), products); err != nil {
		logger.Fatal().Err(err).Msg("failed to write catalogue")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to hash password")
	}

	users, err := auth.LoadUsers(*usersPath)
	if err != nil {
		logger.Warn().Err(err).Msg("existing users file unreadable, starting fresh")
		users = map[string]string{}
	}
	users[*username] = hash

	if err := auth.SaveUsers(*usersPath, users); err != nil {
		logger.Fatal().Err(err).Msg("failed to write users file")
	}

	fmt.Printf("Wrote %d products to %s\n", len(products), *catalogPath)
	fmt.Printf("Wrote %d users to %s\n", len(users), *usersPath)
}
