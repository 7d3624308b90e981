package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product status values. Discontinued products stay in the catalog for
// historical sales but cannot be sold.
const (
	StatusActive       = "active"
	StatusDiscontinued = "discontinued"
)

var (
	ErrSKURequired  = errors.New("sku is required")
	ErrPriceInvalid = errors.New("price must be greater than zero")
	ErrCostInvalid  = errors.New("cost must be greater than zero and less than price")
)

// Product is the catalog row and the sole stock authority. StockQuantity is
// only ever written through the stock accessor, inside the same transaction
// that appends the matching ledger entry.
type Product struct {
	ProductID     uint            `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	SKU           string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Name          string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(12,4);not null" json:"price"`
	Cost          decimal.Decimal `gorm:"column:cost;type:decimal(12,4);not null" json:"cost"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	MinStockLevel int             `gorm:"column:min_stock_level;not null;default:0" json:"min_stock_level"`
	Status        string          `gorm:"column:status;type:varchar(16);not null;default:active" json:"status"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product"
}

func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// NormalizeSKU upper-cases and trims a SKU for case-insensitive matching.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// BeforeCreate enforces catalog invariants: SKU normalized and present,
// price > 0, 0 < cost < price, non-negative starting stock.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	_ = tx
	p.SKU = NormalizeSKU(p.SKU)
	if p.SKU == "" {
		return ErrSKURequired
	}
	if !p.Price.IsPositive() {
		return ErrPriceInvalid
	}
	if !p.Cost.IsPositive() || p.Cost.GreaterThanOrEqual(p.Price) {
		return ErrCostInvalid
	}
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return nil
}
