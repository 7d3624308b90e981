package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopledger.GO/config"
	catalogService "shopledger.GO/service/catalog"
)

var (
	importFile     string
	importMinStock int
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from CSV and book initial stock in the ledger",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := catalogService.ImportProducts(context.Background(), db, f, catalogService.ImportOptions{
			DefaultMinStock: importMinStock,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Created:        %d
Skipped:        %d
Stock booked:   %d
Elapsed:        %s
`, res.TotalRows, res.Created, res.Skipped, res.StockBooked, res.TotalTime)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "products.csv", "Path to CSV file")
	importCmd.Flags().IntVar(&importMinStock, "min-stock", 0, "Default minimum stock level when CSV has no min_stock column")
	rootCmd.AddCommand(importCmd)
}
