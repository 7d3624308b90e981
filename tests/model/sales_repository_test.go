package modeltest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	salesEntity "shopledger.GO/model/entity/sales"
	salesRepo "shopledger.GO/model/repository/sales"
)

func testOrder(number string, total, cost string) *salesEntity.Order {
	return &salesEntity.Order{
		OrderNumber:   number,
		CustomerName:  "Ama",
		TotalAmount:   decimal.RequireFromString(total),
		TotalCost:     decimal.RequireFromString(cost),
		PaymentMethod: salesEntity.PaymentCash,
		PaymentStatus: salesEntity.PaymentStatusPaid,
		OrderStatus:   salesEntity.OrderStatusCompleted,
	}
}

func TestSalesRepository_InsertAndFind(t *testing.T) {
	db := testDB(t)
	repo := salesRepo.NewSalesRepository(db)

	order := testOrder("SO20260901-0001", "150", "90")
	if err := repo.InsertOrder(db, order); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}
	if order.OrderID == 0 {
		t.Fatal("OrderID not set after insert")
	}

	item := &salesEntity.OrderItem{
		OrderID:     order.OrderID,
		ProductID:   1,
		ProductSKU:  "WID-001",
		ProductName: "Widget",
		Quantity:    3,
		UnitPrice:   decimal.NewFromInt(50),
		UnitCost:    decimal.NewFromInt(30),
		LineTotal:   decimal.NewFromInt(150),
		LineCost:    decimal.NewFromInt(90),
	}
	if err := repo.InsertItem(db, item); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}

	found, err := repo.FindOrder(order.OrderID)
	if err != nil {
		t.Fatalf("FindOrder: %v", err)
	}
	if len(found.Items) != 1 {
		t.Fatalf("items preloaded = %d, want 1", len(found.Items))
	}
	if found.Items[0].Quantity != 3 {
		t.Errorf("item quantity = %d, want 3", found.Items[0].Quantity)
	}
	if !found.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalAmount = %s, want 150", found.TotalAmount)
	}
}

func TestSalesRepository_OrderNumberExists(t *testing.T) {
	db := testDB(t)
	repo := salesRepo.NewSalesRepository(db)

	if err := repo.InsertOrder(db, testOrder("SO20260901-00AA", "10", "5")); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}

	exists, err := repo.OrderNumberExists("SO20260901-00AA")
	if err != nil {
		t.Fatalf("OrderNumberExists: %v", err)
	}
	if !exists {
		t.Error("existing number reported missing")
	}
	exists, err = repo.OrderNumberExists("SO20260901-00BB")
	if err != nil {
		t.Fatalf("OrderNumberExists: %v", err)
	}
	if exists {
		t.Error("missing number reported existing")
	}
}

func TestSalesRepository_RecentSales(t *testing.T) {
	db := testDB(t)
	repo := salesRepo.NewSalesRepository(db)

	for _, n := range []string{"SO-R1", "SO-R2", "SO-R3"} {
		if err := repo.InsertOrder(db, testOrder(n, "10", "5")); err != nil {
			t.Fatalf("InsertOrder %s: %v", n, err)
		}
	}

	recent, err := repo.RecentSales(2)
	if err != nil {
		t.Fatalf("RecentSales: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent length = %d, want 2", len(recent))
	}
	if recent[0].OrderNumber != "SO-R3" {
		t.Errorf("recent[0] = %q, want SO-R3", recent[0].OrderNumber)
	}
}

func TestSalesRepository_StatsSince(t *testing.T) {
	db := testDB(t)
	repo := salesRepo.NewSalesRepository(db)

	if err := repo.InsertOrder(db, testOrder("SO-S1", "150", "90")); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}
	if err := repo.InsertOrder(db, testOrder("SO-S2", "50", "20")); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}

	stats, err := repo.StatsSince(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("StatsSince: %v", err)
	}
	if stats.Orders != 2 {
		t.Errorf("Orders = %d, want 2", stats.Orders)
	}
	if !stats.Revenue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Revenue = %s, want 200", stats.Revenue)
	}
	if !stats.Cost.Equal(decimal.NewFromInt(110)) {
		t.Errorf("Cost = %s, want 110", stats.Cost)
	}

	future, err := repo.StatsSince(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("StatsSince future: %v", err)
	}
	if future.Orders != 0 {
		t.Errorf("future Orders = %d, want 0", future.Orders)
	}
}

func TestSalesRepository_StatsSince_FractionalAmounts(t *testing.T) {
	db := testDB(t)
	repo := salesRepo.NewSalesRepository(db)

	if err := repo.InsertOrder(db, testOrder("SO-F1", "10.25", "4.25")); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}
	if err := repo.InsertOrder(db, testOrder("SO-F2", "20.50", "8.50")); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}

	stats, err := repo.StatsSince(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("StatsSince: %v", err)
	}
	if !stats.Revenue.Equal(decimal.RequireFromString("30.75")) {
		t.Errorf("Revenue = %s, want 30.75", stats.Revenue)
	}
	if !stats.Cost.Equal(decimal.RequireFromString("12.75")) {
		t.Errorf("Cost = %s, want 12.75", stats.Cost)
	}
}

func TestSalesRepository_PostCommitMutations(t *testing.T) {
	db := testDB(t)
	repo := salesRepo.NewSalesRepository(db)

	order := testOrder("SO-M1", "10", "5")
	if err := repo.InsertOrder(db, order); err != nil {
		t.Fatalf("InsertOrder: %v", err)
	}

	if err := repo.UpdateNotes(order.OrderID, "delivered"); err != nil {
		t.Fatalf("UpdateNotes: %v", err)
	}
	if err := repo.UpdatePaymentStatus(order.OrderID, "refunded"); err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}

	found, err := repo.FindOrder(order.OrderID)
	if err != nil {
		t.Fatalf("FindOrder: %v", err)
	}
	if found.Notes != "delivered" || found.PaymentStatus != "refunded" {
		t.Errorf("post-commit mutation not applied: %+v", found)
	}
	if !found.TotalAmount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("TotalAmount changed to %s", found.TotalAmount)
	}
}
