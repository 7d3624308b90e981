package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TransactionType is the closed set of ledger entry causes.
type TransactionType string

const (
	TypeInitial    TransactionType = "initial"
	TypePurchase   TransactionType = "purchase"
	TypeSale       TransactionType = "sale"
	TypeAdjustment TransactionType = "adjustment"
	TypeReturn     TransactionType = "return"
	TypeTransfer   TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeInitial, TypePurchase, TypeSale, TypeAdjustment, TypeReturn, TypeTransfer:
		return true
	}
	return false
}

// Reference types linking a ledger entry to its cause.
const (
	RefSalesOrder       = "sales_order"
	RefManualAdjustment = "manual_adjustment"
	RefProductCreation  = "product_creation"
)

// Transaction is one append-only ledger entry. Rows are never updated or
// deleted once written; the latest entry's NewStock for a product must equal
// that product's current stock_quantity.
//
// The (product_id, reference_number) unique index is the idempotency key:
// re-appending the same change for the same cause fails at the datastore.
type Transaction struct {
	TransactionID     uint            `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	TransactionNumber string          `gorm:"column:transaction_number;type:varchar(32);not null;uniqueIndex" json:"transaction_number"`
	ProductID         uint            `gorm:"column:product_id;not null;index;uniqueIndex:idx_ledger_idempotency" json:"product_id"`
	ProductSKU        string          `gorm:"column:product_sku;type:varchar(64);not null" json:"product_sku"`
	Type              TransactionType `gorm:"column:type;type:varchar(16);not null" json:"type"`
	QuantityChange    int             `gorm:"column:quantity_change;not null" json:"quantity_change"`
	PreviousStock     int             `gorm:"column:previous_stock;not null" json:"previous_stock"`
	NewStock          int             `gorm:"column:new_stock;not null" json:"new_stock"`
	UnitCost          decimal.Decimal `gorm:"column:unit_cost;type:decimal(12,4);not null" json:"unit_cost"`
	ReferenceType     string          `gorm:"column:reference_type;type:varchar(32)" json:"reference_type,omitempty"`
	ReferenceID       uint            `gorm:"column:reference_id" json:"reference_id,omitempty"`
	ReferenceNumber   *string         `gorm:"column:reference_number;type:varchar(64);uniqueIndex:idx_ledger_idempotency" json:"reference_number,omitempty"`
	Meta              datatypes.JSON  `gorm:"column:meta" json:"meta,omitempty"`
	CreatedBy         string          `gorm:"column:created_by;type:varchar(64)" json:"created_by"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "inventory_transaction"
}
