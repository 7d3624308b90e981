package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopledger.GO/config"
	catalogRepo "shopledger.GO/model/repository/catalog"
	inventoryService "shopledger.GO/service/inventory"
)

var (
	adjustSKU    string
	adjustID     uint
	adjustChange int
	adjustReason string
	adjustNote   string
	adjustActor  string
)

var stockAdjustCmd = &cobra.Command{
	Use:   "stock:adjust",
	Short: "Book a manual stock adjustment against the ledger",
	Run: func(cmd *cobra.Command, args []string) {
		if adjustChange == 0 {
			fmt.Println("A nonzero --change is required.")
			os.Exit(1)
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}

		productID := adjustID
		if productID == 0 {
			if adjustSKU == "" {
				fmt.Println("Either --id or --sku is required.")
				os.Exit(1)
			}
			p, err := catalogRepo.GetProductRepository(db).FindBySKU(adjustSKU)
			if err != nil {
				fmt.Printf("Product %q not found: %v\n", adjustSKU, err)
				os.Exit(1)
			}
			productID = p.ProductID
		}

		accessor := inventoryService.NewStockAccessor(db)
		entry, err := accessor.Adjust(context.Background(), productID, adjustChange, adjustReason, adjustNote, adjustActor)
		if err != nil {
			fmt.Printf("Adjustment failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf(`
=== Stock Adjustment ===
Transaction:    %s
Product ID:     %d
Requested:      %+d
Applied:        %+d
Previous stock: %d
New stock:      %d
`, entry.TransactionNumber, entry.ProductID, adjustChange, entry.QuantityChange, entry.PreviousStock, entry.NewStock)
		if entry.QuantityChange != adjustChange {
			fmt.Println("Note: change was clamped to keep stock at zero.")
		}
	},
}

func init() {
	stockAdjustCmd.Flags().StringVar(&adjustSKU, "sku", "", "Product SKU")
	stockAdjustCmd.Flags().UintVar(&adjustID, "id", 0, "Product ID (takes precedence over --sku)")
	stockAdjustCmd.Flags().IntVar(&adjustChange, "change", 0, "Signed quantity change, e.g. -5 or 20")
	stockAdjustCmd.Flags().StringVar(&adjustReason, "reason", "", "Reason for the adjustment")
	stockAdjustCmd.Flags().StringVar(&adjustNote, "note", "", "Free-form note stored with the ledger entry")
	stockAdjustCmd.Flags().StringVar(&adjustActor, "by", "cli", "Actor recorded as created_by")
	rootCmd.AddCommand(stockAdjustCmd)
}
