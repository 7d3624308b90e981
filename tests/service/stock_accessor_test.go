package servicetest

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogEntity "shopledger.GO/model/entity/catalog"
	customerEntity "shopledger.GO/model/entity/customer"
	inventoryEntity "shopledger.GO/model/entity/inventory"
	salesEntity "shopledger.GO/model/entity/sales"
	ledgerRepo "shopledger.GO/model/repository/inventory"
	inventoryService "shopledger.GO/service/inventory"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&catalogEntity.Product{},
		&inventoryEntity.Transaction{},
		&salesEntity.Order{},
		&salesEntity.OrderItem{},
		&customerEntity.Customer{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedProduct creates a product and books its starting stock through the
// ledger, so the stock == sum(changes) invariant holds from the first row.
func seedProduct(t *testing.T, db *gorm.DB, sku string, price, cost int64, stock int) *catalogEntity.Product {
	t.Helper()
	p := &catalogEntity.Product{
		SKU:   sku,
		Name:  "Test " + sku,
		Price: decimal.NewFromInt(price),
		Cost:  decimal.NewFromInt(cost),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	if stock > 0 {
		accessor := inventoryService.NewStockAccessor(db)
		if _, err := accessor.ReceiveInitialStock(context.Background(), p.ProductID, stock); err != nil {
			t.Fatalf("initial stock: %v", err)
		}
		p.StockQuantity = stock
	}
	return p
}

func currentStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p catalogEntity.Product
	if err := db.First(&p, "product_id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.StockQuantity
}

// checkInvariant asserts stock_quantity equals the ledger sum for a product.
func checkInvariant(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	sum, err := ledgerRepo.GetLedgerRepository(db).SumQuantityChange(id)
	if err != nil {
		t.Fatalf("ledger sum: %v", err)
	}
	if stock := currentStock(t, db, id); stock != sum {
		t.Errorf("invariant broken: stock=%d ledger sum=%d", stock, sum)
	}
}

func TestStockAccessor_ReceiveInitialStock(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "INIT-1", 50, 30, 10)

	if got := currentStock(t, db, p.ProductID); got != 10 {
		t.Errorf("stock = %d, want 10", got)
	}
	entry, err := ledgerRepo.GetLedgerRepository(db).LatestByProduct(p.ProductID)
	if err != nil {
		t.Fatalf("LatestByProduct: %v", err)
	}
	if entry.Type != inventoryEntity.TypeInitial || entry.QuantityChange != 10 || entry.PreviousStock != 0 {
		t.Errorf("unexpected initial entry: %+v", entry)
	}
	checkInvariant(t, db, p.ProductID)

	accessor := inventoryService.NewStockAccessor(db)
	if _, err := accessor.ReceiveInitialStock(context.Background(), p.ProductID, 0); err == nil {
		t.Error("expected error for non-positive initial quantity")
	}
}

func TestStockAccessor_Adjust(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "ADJ-1", 50, 30, 10)
	accessor := inventoryService.NewStockAccessor(db)

	entry, err := accessor.Adjust(context.Background(), p.ProductID, -4, "damage", "water damage", "tester")
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if entry.QuantityChange != -4 || entry.PreviousStock != 10 || entry.NewStock != 6 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Type != inventoryEntity.TypeAdjustment {
		t.Errorf("type = %q, want adjustment", entry.Type)
	}
	if got := currentStock(t, db, p.ProductID); got != 6 {
		t.Errorf("stock = %d, want 6", got)
	}
	checkInvariant(t, db, p.ProductID)
}

func TestStockAccessor_AdjustUnknownProduct(t *testing.T) {
	db := testDB(t)
	accessor := inventoryService.NewStockAccessor(db)

	_, err := accessor.Adjust(context.Background(), 9999, 5, "found", "", "tester")
	if !errors.Is(err, inventoryService.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestStockAccessor_ClampToZero(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "CLAMP-1", 50, 30, 7)
	accessor := inventoryService.NewStockAccessor(db)

	entry, err := accessor.Adjust(context.Background(), p.ProductID, -100, "writeoff", "", "tester")
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if entry.QuantityChange != -7 {
		t.Errorf("applied change = %d, want -7 (clamped)", entry.QuantityChange)
	}
	if entry.NewStock != 0 {
		t.Errorf("NewStock = %d, want 0", entry.NewStock)
	}
	if got := currentStock(t, db, p.ProductID); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
	checkInvariant(t, db, p.ProductID)
}

func TestStockAccessor_ReadAfterWrite(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "RAW-1", 50, 30, 10)
	accessor := inventoryService.NewStockAccessor(db)

	if _, err := accessor.Adjust(context.Background(), p.ProductID, -3, "sale prep", "", "tester"); err != nil {
		t.Fatalf("Adjust: %v", err)
	}

	history, err := ledgerRepo.GetLedgerRepository(db).HistoryByProduct(p.ProductID, 1)
	if err != nil {
		t.Fatalf("HistoryByProduct: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].NewStock != currentStock(t, db, p.ProductID) {
		t.Errorf("latest NewStock %d != current stock", history[0].NewStock)
	}
}
