package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopledger.GO/config"
	catalogEntity "shopledger.GO/model/entity/catalog"
	catalogRepo "shopledger.GO/model/repository/catalog"
	ledgerRepo "shopledger.GO/model/repository/inventory"
)

var verifyRebuild bool

var stockVerifyCmd = &cobra.Command{
	Use:   "stock:verify",
	Short: "Audit stock quantities against the transaction ledger",
	Long:  "Compares every product's stock_quantity with the sum of its ledger entries and reports mismatches. With --rebuild, stock_quantity is overwritten from the ledger sums.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}

		products, err := catalogRepo.GetProductRepository(db).FindAll()
		if err != nil {
			fmt.Printf("Product scan failed: %v\n", err)
			os.Exit(1)
		}
		sums, err := ledgerRepo.GetLedgerRepository(db).LedgerSums()
		if err != nil {
			fmt.Printf("Ledger scan failed: %v\n", err)
			os.Exit(1)
		}

		mismatches := 0
		rebuilt := 0
		for _, p := range products {
			expected := sums[p.ProductID]
			if p.StockQuantity == expected {
				continue
			}
			mismatches++
			fmt.Printf("  [drift] %s (id=%d): stock=%d ledger=%d\n", p.SKU, p.ProductID, p.StockQuantity, expected)

			if verifyRebuild {
				err := db.Model(&catalogEntity.Product{}).
					Where("product_id = ?", p.ProductID).
					Update("stock_quantity", expected).Error
				if err != nil {
					fmt.Printf("  [error] rebuild of %s failed: %v\n", p.SKU, err)
					continue
				}
				rebuilt++
			}
		}

		fmt.Printf(`
=== Ledger Audit ===
Products checked: %d
Mismatches:       %d
Rebuilt:          %d
`, len(products), mismatches, rebuilt)
		if mismatches > 0 && !verifyRebuild {
			fmt.Println("Run with --rebuild to overwrite stock from ledger sums.")
			os.Exit(1)
		}
	},
}

func init() {
	stockVerifyCmd.Flags().BoolVar(&verifyRebuild, "rebuild", false, "Overwrite stock_quantity from ledger sums")
	rootCmd.AddCommand(stockVerifyCmd)
}
