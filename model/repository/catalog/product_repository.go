package catalog

import (
	"database/sql"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "shopledger.GO/model/entity/catalog"
)

// ErrProductReferenced is returned by Delete when historical sales or ledger
// entries reference the product. Use Discontinue instead.
var ErrProductReferenced = errors.New("product has historical references; discontinue instead of delete")

type ProductRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

var (
	productRepoMu        sync.Mutex
	productRepoInstances = map[*gorm.DB]*ProductRepository{}
)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	sqlDB, _ := db.DB()
	return &ProductRepository{db: db, sqlDB: sqlDB}
}

// GetProductRepository returns a shared repository instance per DB handle.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	productRepoMu.Lock()
	defer productRepoMu.Unlock()
	if r, ok := productRepoInstances[db]; ok {
		return r
	}
	r := NewProductRepository(db)
	productRepoInstances[db] = r
	return r
}

func (r *ProductRepository) Create(p *catalogEntity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) FindByID(id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.First(&p, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindBySKU(sku string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.First(&p, "sku = ?", catalogEntity.NormalizeSKU(sku)).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindAll() ([]catalogEntity.Product, error) {
	var out []catalogEntity.Product
	err := r.db.Order("product_id").Find(&out).Error
	return out, err
}

// GetQuantityBySKU returns current stock for a SKU.
// Uses raw SQL for minimal overhead
func (r *ProductRepository) GetQuantityBySKU(sku string) (int, bool) {
	const query = `SELECT stock_quantity FROM catalog_product WHERE sku = ? LIMIT 1`
	var qty sql.NullInt64
	if err := r.sqlDB.QueryRow(query, catalogEntity.NormalizeSKU(sku)).Scan(&qty); err != nil || !qty.Valid {
		return 0, false
	}
	return int(qty.Int64), true
}

// LockForUpdate reads a product under a row lock within the caller's
// transaction. Serializes concurrent stock writers on the same product.
// SQLite has no FOR UPDATE; its single-writer model covers the same need.
func (r *ProductRepository) LockForUpdate(tx *gorm.DB, id uint) (*catalogEntity.Product, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p catalogEntity.Product
	if err := q.First(&p, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStockQuantity writes stock inside the caller's transaction. Only the
// stock accessor may call this.
func (r *ProductRepository) UpdateStockQuantity(tx *gorm.DB, id uint, qty int) error {
	return tx.Model(&catalogEntity.Product{}).
		Where("product_id = ?", id).
		Update("stock_quantity", qty).Error
}

// LowStock returns active products at or below their reorder threshold.
func (r *ProductRepository) LowStock() ([]catalogEntity.Product, error) {
	var out []catalogEntity.Product
	err := r.db.
		Where("stock_quantity <= min_stock_level AND status = ?", catalogEntity.StatusActive).
		Order("stock_quantity").
		Find(&out).Error
	return out, err
}

// Discontinue logically deletes a product. It stays readable for history.
func (r *ProductRepository) Discontinue(id uint) error {
	res := r.db.Model(&catalogEntity.Product{}).
		Where("product_id = ?", id).
		Update("status", catalogEntity.StatusDiscontinued)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a product. Permitted only with zero historical
// references (ledger entries or sale items); otherwise ErrProductReferenced.
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Table("inventory_transaction").Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs == 0 {
			if err := tx.Table("sales_order_item").Where("product_id = ?", id).Count(&refs).Error; err != nil {
				return err
			}
		}
		if refs > 0 {
			return ErrProductReferenced
		}
		res := tx.Delete(&catalogEntity.Product{}, "product_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
