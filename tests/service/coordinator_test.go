package servicetest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	inventoryEntity "shopledger.GO/model/entity/inventory"
	salesEntity "shopledger.GO/model/entity/sales"
	ledgerRepo "shopledger.GO/model/repository/inventory"
	salesRepo "shopledger.GO/model/repository/sales"
	inventoryService "shopledger.GO/service/inventory"
	salesService "shopledger.GO/service/sales"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestCoordinator_RecordSaleScenario(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "P1", 50, 30, 10)
	compiler := salesService.NewCompiler(db)
	coordinator := salesService.NewCoordinator(db)

	compiled, err := compiler.Compile(saleRequest(p.ProductID, 3))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	result, err := coordinator.RecordSale(context.Background(), compiled)
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if !result.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalAmount = %s, want 150", result.TotalAmount)
	}
	if !result.TotalCost.Equal(decimal.NewFromInt(90)) {
		t.Errorf("TotalCost = %s, want 90", result.TotalCost)
	}
	if !result.Profit.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Profit = %s, want 60", result.Profit)
	}
	if len(result.ShortFills) != 0 {
		t.Errorf("unexpected short fills: %+v", result.ShortFills)
	}
	if got := currentStock(t, db, p.ProductID); got != 7 {
		t.Errorf("stock = %d, want 7", got)
	}

	entry, err := ledgerRepo.GetLedgerRepository(db).LatestByProduct(p.ProductID)
	if err != nil {
		t.Fatalf("LatestByProduct: %v", err)
	}
	if entry.Type != inventoryEntity.TypeSale || entry.QuantityChange != -3 ||
		entry.PreviousStock != 10 || entry.NewStock != 7 {
		t.Errorf("unexpected ledger entry: %+v", entry)
	}
	if entry.ReferenceNumber == nil || *entry.ReferenceNumber != result.OrderNumber {
		t.Errorf("entry reference = %v, want %q", entry.ReferenceNumber, result.OrderNumber)
	}
	checkInvariant(t, db, p.ProductID)

	order, err := salesRepo.GetSalesRepository(db).FindOrder(result.SaleID)
	if err != nil {
		t.Fatalf("FindOrder: %v", err)
	}
	if order.PaymentStatus != salesEntity.PaymentStatusPaid || order.OrderStatus != salesEntity.OrderStatusCompleted {
		t.Errorf("order flags = %q/%q", order.PaymentStatus, order.OrderStatus)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Errorf("order items: %+v", order.Items)
	}
}

func TestCoordinator_InsufficientStockAtCompile(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "P2", 50, 30, 2)
	compiler := salesService.NewCompiler(db)

	_, err := compiler.Compile(saleRequest(p.ProductID, 5))
	var ie *salesService.InsufficientStockError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if ie.Available != 2 {
		t.Errorf("Available = %d, want 2", ie.Available)
	}
	if got := currentStock(t, db, p.ProductID); got != 2 {
		t.Errorf("stock = %d, want 2", got)
	}
	if n := countRows(t, db, &salesEntity.Order{}); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
}

// A product drained to nothing between compile and record must abort the
// whole sale, leaving no rows from the attempt behind.
func TestCoordinator_AtomicRollback(t *testing.T) {
	db := testDB(t)
	a := seedProduct(t, db, "AT-A", 50, 30, 10)
	b := seedProduct(t, db, "AT-B", 20, 10, 5)
	c := seedProduct(t, db, "AT-C", 80, 40, 8)
	compiler := salesService.NewCompiler(db)
	coordinator := salesService.NewCoordinator(db)
	accessor := inventoryService.NewStockAccessor(db)

	compiled, err := compiler.Compile(salesService.SaleRequest{
		Items: []salesService.SaleItemRequest{
			{ProductID: a.ProductID, Quantity: 2},
			{ProductID: b.ProductID, Quantity: 5},
			{ProductID: c.ProductID, Quantity: 1},
		},
		CustomerName:  "Ama",
		PaymentMethod: salesEntity.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Concurrent sale wins all of B's stock before the commit runs.
	if _, err := accessor.Adjust(context.Background(), b.ProductID, -5, "competing sale", "", "rival"); err != nil {
		t.Fatalf("drain B: %v", err)
	}
	ordersBefore := countRows(t, db, &salesEntity.Order{})
	itemsBefore := countRows(t, db, &salesEntity.OrderItem{})
	entriesBefore := countRows(t, db, &inventoryEntity.Transaction{})

	_, err = coordinator.RecordSale(context.Background(), compiled)
	if err == nil {
		t.Fatal("expected RecordSale to fail")
	}
	var se *salesService.SaleError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want SaleError", err)
	}
	var ie *salesService.InsufficientStockError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want wrapped InsufficientStockError", err)
	}
	if ie.Available != 0 {
		t.Errorf("Available = %d, want 0", ie.Available)
	}

	if n := countRows(t, db, &salesEntity.Order{}); n != ordersBefore {
		t.Errorf("orders = %d, want %d", n, ordersBefore)
	}
	if n := countRows(t, db, &salesEntity.OrderItem{}); n != itemsBefore {
		t.Errorf("order items = %d, want %d", n, itemsBefore)
	}
	if n := countRows(t, db, &inventoryEntity.Transaction{}); n != entriesBefore {
		t.Errorf("ledger entries = %d, want %d", n, entriesBefore)
	}
	if got := currentStock(t, db, a.ProductID); got != 10 {
		t.Errorf("A stock = %d, want 10", got)
	}
	if got := currentStock(t, db, b.ProductID); got != 0 {
		t.Errorf("B stock = %d, want 0", got)
	}
	if got := currentStock(t, db, c.ProductID); got != 8 {
		t.Errorf("C stock = %d, want 8", got)
	}
	for _, id := range []uint{a.ProductID, b.ProductID, c.ProductID} {
		checkInvariant(t, db, id)
	}
}

// Two sales compiled against the same remaining stock: the first to commit
// wins, the second aborts with InsufficientStockError and final stock is 0.
//
// The appliers run sequentially here. SQLite allows one writer at a time, so
// the separate FOR UPDATE row lock LockForUpdate takes on MySQL never runs
// under this suite; on MySQL the lock serializes the two RecordSale
// transactions into exactly this order-dependent outcome.
func TestCoordinator_CompetingSales(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "RACE-1", 50, 30, 4)
	compiler := salesService.NewCompiler(db)
	coordinator := salesService.NewCoordinator(db)

	first, err := compiler.Compile(saleRequest(p.ProductID, 4))
	if err != nil {
		t.Fatalf("Compile first: %v", err)
	}
	second, err := compiler.Compile(saleRequest(p.ProductID, 4))
	if err != nil {
		t.Fatalf("Compile second: %v", err)
	}

	if _, err := coordinator.RecordSale(context.Background(), first); err != nil {
		t.Fatalf("RecordSale first: %v", err)
	}

	_, err = coordinator.RecordSale(context.Background(), second)
	var ie *salesService.InsufficientStockError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if got := currentStock(t, db, p.ProductID); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
	if n := countRows(t, db, &salesEntity.Order{}); n != 1 {
		t.Errorf("orders = %d, want 1", n)
	}
	checkInvariant(t, db, p.ProductID)
}

// A partial drain between compile and record commits with a ShortFill.
func TestCoordinator_ShortFill(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "SF-1", 50, 30, 10)
	compiler := salesService.NewCompiler(db)
	coordinator := salesService.NewCoordinator(db)
	accessor := inventoryService.NewStockAccessor(db)

	compiled, err := compiler.Compile(saleRequest(p.ProductID, 6))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := accessor.Adjust(context.Background(), p.ProductID, -8, "competing sale", "", "rival"); err != nil {
		t.Fatalf("drain: %v", err)
	}

	result, err := coordinator.RecordSale(context.Background(), compiled)
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if len(result.ShortFills) != 1 {
		t.Fatalf("short fills = %d, want 1", len(result.ShortFills))
	}
	sf := result.ShortFills[0]
	if sf.Requested != 6 || sf.Applied != 2 {
		t.Errorf("short fill = %+v, want requested 6 applied 2", sf)
	}
	if got := currentStock(t, db, p.ProductID); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
	checkInvariant(t, db, p.ProductID)
}
