// Imports merchant and order CSV dumps into the database.
//
// Usage:
//
//	import -merchants merchants.csv -orders orders.csv
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"disburser/internal/config"
	"disburser/internal/ingestion"
	"disburser/internal/repositories"
)

const batchSize = 500

func main() {
	merchantsPath := flag.String("merchants", "", "path to the merchants CSV")
	ordersPath := flag.String("orders", "", "path to the orders CSV")
	flag.Parse()

	if *merchantsPath == "" && *ordersPath == "" {
		log.Fatal("at least one of -merchants or -orders is required")
	}

	config.LoadEnv()
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	ctx := context.Background()

	if *merchantsPath != "" {
		file, err := os.Open(*merchantsPath)
		if err != nil {
			log.Fatalf("failed to open %s: %v", *merchantsPath, err)
		}
		merchants, err := ingestion.ParseMerchantsCSV(file)
		file.Close()
		if err != nil {
			log.Fatalf("failed to parse merchants: %v", err)
		}

		repo := repositories.NewMerchantRepository(repositories.DB, nil)
		if err := repo.CreateInBatches(ctx, merchants, batchSize); err != nil {
			log.Fatalf("failed to import merchants: %v", err)
		}
		log.Printf("imported %d merchants", len(merchants))
	}

	if *ordersPath != "" {
		file, err := os.Open(*ordersPath)
		if err != nil {
			log.Fatalf("failed to open %s: %v", *ordersPath, err)
		}
		orders, err := ingestion.ParseOrdersCSV(file)
		file.Close()
		if err != nil {
			log.Fatalf("failed to parse orders: %v", err)
		}

		repo := repositories.NewOrderRepository(repositories.DB)
		if err := repo.CreateInBatches(ctx, orders, batchSize); err != nil {
			log.Fatalf("failed to import orders: %v", err)
		}
		log.Printf("imported %d orders", len(orders))
	}
}
