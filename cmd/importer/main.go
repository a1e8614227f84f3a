package main

import (
	"flag"
	"fmt"
	"log"

	"kozsync/internal/config"
	"kozsync/internal/database"
	"kozsync/internal/logger"
	"kozsync/internal/models"
	"kozsync/internal/services/woocommerce"
	"kozsync/internal/sync"
)

// One-shot feed importer for operator use:
//
//	importer -categories categories.json -dry-run
//	importer -products products.json -offset 0 -limit 500 -push
func main() {
	categoriesPath := flag.String("categories", "", "category feed file to import")
	productsPath := flag.String("products", "", "product feed file to import")
	dryRun := flag.Bool("dry-run", false, "simulate without remote or database writes")
	offset := flag.Int("offset", 0, "product feed offset")
	limit := flag.Int("limit", 0, "max items to process (0 = all)")
	push := flag.Bool("push", false, "push imported products to the store afterwards")
	flag.Parse()

	if *categoriesPath == "" && *productsPath == "" {
		log.Fatal("nothing to do: pass -categories and/or -products")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	catalog := woocommerce.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, logger)
	store := sync.NewGormStore(db.DB)

	if *categoriesPath != "" {
		feed, err := sync.ReadCategoryFeedFile(*categoriesPath)
		if err != nil {
			logger.Fatal("%v", err)
		}

		importer := sync.NewCategoryImporter(catalog, store, logger)
		report, err := importer.Import(feed, sync.CategoryImportOptions{DryRun: *dryRun, Limit: *limit})
		if err != nil {
			logger.Fatal("Category import failed: %v", err)
		}

		fmt.Printf("categories: %d main / %d sub, created %d main / %d sub, %d errors\n",
			report.TotalMain, report.TotalSub, report.CreatedMain, report.CreatedSub, len(report.Errors))
		for _, e := range report.Errors {
			fmt.Println("  ", e)
		}
	}

	if *productsPath != "" {
		feed, err := sync.ReadProductFeedFile(*productsPath)
		if err != nil {
			logger.Fatal("%v", err)
		}

		importer := sync.NewProductImporter(store, store, logger)
		report, err := importer.Import(feed, sync.ProductImportOptions{
			DryRun: *dryRun,
			Offset: *offset,
			Limit:  *limit,
			OnProgress: func(processed, total int, result sync.ItemResult) {
				if processed%100 == 0 || processed == total {
					fmt.Printf("  %d/%d\n", processed, total)
				}
			},
		})
		if err != nil {
			logger.Fatal("Product import failed: %v", err)
		}

		fmt.Printf("products: %d total, %d created, %d updated, %d skipped, %d errors\n",
			report.Total, report.Created, report.Updated, report.Skipped, len(report.Errors))

		if *push && !*dryRun {
			ids := make([]string, 0, len(report.Products))
			for _, item := range report.Products {
				if item.Product != nil && item.Product.SyncStatus != models.SyncStatusSynced {
					ids = append(ids, item.Product.ID)
				}
			}

			pusher := sync.NewPusher(catalog, store, logger)
			batch, err := pusher.PushBatch(ids)
			if err != nil {
				logger.Fatal("Batch push failed: %v", err)
			}
			fmt.Printf("push: %d ok, %d failed\n", batch.Success, batch.Failed)
			for _, detail := range batch.Details {
				if !detail.Success {
					fmt.Printf("  %s: %s\n", detail.Barcode, detail.Error)
				}
			}
		}
	}
}
