package sales

import (
	"database/sql"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	salesEntity "shopledger.GO/model/entity/sales"
)

type SalesRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

var (
	salesRepoMu        sync.Mutex
	salesRepoInstances = map[*gorm.DB]*SalesRepository{}
)

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	sqlDB, _ := db.DB()
	return &SalesRepository{db: db, sqlDB: sqlDB}
}

// GetSalesRepository returns a shared repository instance per DB handle.
func GetSalesRepository(db *gorm.DB) *SalesRepository {
	salesRepoMu.Lock()
	defer salesRepoMu.Unlock()
	if r, ok := salesRepoInstances[db]; ok {
		return r
	}
	r := NewSalesRepository(db)
	salesRepoInstances[db] = r
	return r
}

// InsertOrder persists the order row inside the caller's transaction.
func (r *SalesRepository) InsertOrder(tx *gorm.DB, order *salesEntity.Order) error {
	return tx.Create(order).Error
}

// InsertItem persists one line item inside the caller's transaction.
func (r *SalesRepository) InsertItem(tx *gorm.DB, item *salesEntity.OrderItem) error {
	return tx.Create(item).Error
}

func (r *SalesRepository) OrderNumberExists(n string) (bool, error) {
	var count int64
	err := r.db.Model(&salesEntity.Order{}).Where("order_number = ?", n).Count(&count).Error
	return count > 0, err
}

func (r *SalesRepository) FindOrder(id uint) (*salesEntity.Order, error) {
	var order salesEntity.Order
	err := r.db.Preload("Items").First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// RecentSales returns the latest committed orders, newest first.
func (r *SalesRepository) RecentSales(limit int) ([]salesEntity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []salesEntity.Order
	err := r.db.Preload("Items").Order("order_id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// DayStats holds sale aggregates for one calendar day.
type DayStats struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Orders  int64
}

// StatsSince aggregates completed orders created at or after the cutoff.
// Uses raw SQL for minimal overhead
func (r *SalesRepository) StatsSince(cutoff time.Time) (*DayStats, error) {
	const query = `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(total_cost), 0), COUNT(*)
		FROM sales_order
		WHERE order_status = ? AND created_at >= ?`
	// DECIMAL sums come back as strings so no float round-trip loses exactness.
	var revenue, cost sql.NullString
	var orders int64
	if err := r.sqlDB.QueryRow(query, salesEntity.OrderStatusCompleted, cutoff).Scan(&revenue, &cost, &orders); err != nil {
		return nil, err
	}
	stats := &DayStats{Revenue: decimal.Zero, Cost: decimal.Zero, Orders: orders}
	if revenue.Valid {
		d, err := decimal.NewFromString(revenue.String)
		if err != nil {
			return nil, err
		}
		stats.Revenue = d
	}
	if cost.Valid {
		d, err := decimal.NewFromString(cost.String)
		if err != nil {
			return nil, err
		}
		stats.Cost = d
	}
	return stats, nil
}

// UpdateNotes mutates the only free-text field allowed to change post-commit.
func (r *SalesRepository) UpdateNotes(id uint, notes string) error {
	res := r.db.Model(&salesEntity.Order{}).Where("order_id = ?", id).Update("notes", notes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePaymentStatus mutates payment status post-commit (e.g. credit sale
// later settled). Financial amounts stay immutable.
func (r *SalesRepository) UpdatePaymentStatus(id uint, status string) error {
	res := r.db.Model(&salesEntity.Order{}).Where("order_id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
