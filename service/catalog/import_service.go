package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogEntity "shopledger.GO/model/entity/catalog"
	catalogRepo "shopledger.GO/model/repository/catalog"
	inventoryService "shopledger.GO/service/inventory"
)

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	// DefaultMinStock is applied when the CSV has no min_stock column.
	DefaultMinStock int
}

// ImportResult holds the result of a catalog import run.
type ImportResult struct {
	TotalRows   int
	Created     int
	Skipped     int
	StockBooked int
	Warnings    []string
	TotalTime   time.Duration
}

var requiredColumns = []string{"sku", "name", "price", "cost"}

// ImportProducts reads products from CSV (columns: sku, name, price, cost,
// optional stock, min_stock) and creates catalog rows. Products are created
// with zero stock; a nonzero stock column is booked through the ledger as an
// initial-stock entry, so the stock/ledger invariant holds from row one.
func ImportProducts(ctx context.Context, db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	result := &ImportResult{}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", col)
		}
	}

	products := catalogRepo.GetProductRepository(db)
	stock := inventoryService.NewStockAccessor(db)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row read: %v", err))
			result.Skipped++
			continue
		}
		result.TotalRows++

		sku := catalogEntity.NormalizeSKU(field(row, colIndex, "sku"))
		if sku == "" {
			result.Warnings = append(result.Warnings, "empty sku, skipping")
			result.Skipped++
			continue
		}
		if _, err := products.FindBySKU(sku); err == nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: already exists", sku))
			result.Skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sku lookup: %w", err)
		}

		price, err := decimal.NewFromString(field(row, colIndex, "price"))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: invalid price", sku))
			result.Skipped++
			continue
		}
		cost, err := decimal.NewFromString(field(row, colIndex, "cost"))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: invalid cost", sku))
			result.Skipped++
			continue
		}

		minStock := opts.DefaultMinStock
		if v := field(row, colIndex, "min_stock"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				minStock = n
			}
		}

		initialQty := 0
		if v := field(row, colIndex, "stock"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: invalid stock %q", sku, v))
				result.Skipped++
				continue
			}
			initialQty = n
		}

		p := &catalogEntity.Product{
			SKU:           sku,
			Name:          field(row, colIndex, "name"),
			Price:         price,
			Cost:          cost,
			MinStockLevel: minStock,
			Status:        catalogEntity.StatusActive,
		}
		if err := products.Create(p); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: %v", sku, err))
			result.Skipped++
			continue
		}
		result.Created++

		if initialQty > 0 {
			if _, err := stock.ReceiveInitialStock(ctx, p.ProductID, initialQty); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: initial stock: %v", sku, err))
				continue
			}
			result.StockBooked++
		}
	}

	result.TotalTime = time.Since(start)
	return result, nil
}

func field(row []string, colIndex map[string]int, name string) string {
	i, ok := colIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
