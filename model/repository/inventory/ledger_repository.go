package inventory

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	inventoryEntity "shopledger.GO/model/entity/inventory"
)

// LedgerRepository is the append-only store for inventory transactions.
// It exposes no update or delete methods: the ledger is the audit trail.
type LedgerRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

var (
	ledgerRepoMu        sync.Mutex
	ledgerRepoInstances = map[*gorm.DB]*LedgerRepository{}
)

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	sqlDB, _ := db.DB()
	return &LedgerRepository{db: db, sqlDB: sqlDB}
}

// GetLedgerRepository returns a shared repository instance per DB handle.
func GetLedgerRepository(db *gorm.DB) *LedgerRepository {
	ledgerRepoMu.Lock()
	defer ledgerRepoMu.Unlock()
	if r, ok := ledgerRepoInstances[db]; ok {
		return r
	}
	r := NewLedgerRepository(db)
	ledgerRepoInstances[db] = r
	return r
}

// NewTransactionNumber generates an externally visible ledger reference,
// e.g. TXN-9F2C41A8B3D0.
func NewTransactionNumber() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return "TXN-" + strings.ToUpper(hex.EncodeToString(buf))
}

// Append persists one ledger entry inside the caller's transaction. It does
// no business validation — previous/new stock must already be correct. A
// missing transaction number is generated here.
func (r *LedgerRepository) Append(tx *gorm.DB, entry *inventoryEntity.Transaction) error {
	if entry.TransactionNumber == "" {
		entry.TransactionNumber = NewTransactionNumber()
	}
	if !entry.Type.Valid() {
		return fmt.Errorf("ledger append: invalid transaction type %q", entry.Type)
	}
	return tx.Create(entry).Error
}

// HistoryByProduct returns ledger entries for a product, newest first.
func (r *LedgerRepository) HistoryByProduct(productID uint, limit int) ([]inventoryEntity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []inventoryEntity.Transaction
	err := r.db.
		Where("product_id = ?", productID).
		Order("transaction_id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// LatestByProduct returns the most recent ledger entry for a product.
func (r *LedgerRepository) LatestByProduct(productID uint) (*inventoryEntity.Transaction, error) {
	var entry inventoryEntity.Transaction
	err := r.db.
		Where("product_id = ?", productID).
		Order("transaction_id DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SumQuantityChange sums quantity_change over all committed entries for a
// product. Uses raw SQL for minimal overhead
func (r *LedgerRepository) SumQuantityChange(productID uint) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity_change), 0) FROM inventory_transaction WHERE product_id = ?`
	var total int
	err := r.sqlDB.QueryRow(query, productID).Scan(&total)
	return total, err
}

// LedgerSums returns per-product quantity_change sums in one query, for the
// stock-vs-ledger invariant audit.
func (r *LedgerRepository) LedgerSums() (map[uint]int, error) {
	rows, err := r.db.Table("inventory_transaction").
		Select("product_id, SUM(quantity_change) AS total").
		Group("product_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint]int)
	for rows.Next() {
		var productID uint
		var total int
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, err
		}
		out[productID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByReference reports whether an entry for this cause already exists.
func (r *LedgerRepository) CountByReference(productID uint, referenceNumber string) (int64, error) {
	var n int64
	err := r.db.Model(&inventoryEntity.Transaction{}).
		Where("product_id = ? AND reference_number = ?", productID, referenceNumber).
		Count(&n).Error
	return n, err
}
