package sales

import "github.com/shopspring/decimal"

// OrderItem is one immutable line of a sale, with price/cost snapshots taken
// at compile time. line_total = quantity * unit_price, line_cost = quantity *
// unit_cost.
type OrderItem struct {
	ItemID      uint            `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	OrderID     uint            `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID   uint            `gorm:"column:product_id;not null;index" json:"product_id"`
	ProductSKU  string          `gorm:"column:product_sku;type:varchar(64);not null" json:"product_sku"`
	ProductName string          `gorm:"column:product_name;type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,4);not null" json:"unit_price"`
	UnitCost    decimal.Decimal `gorm:"column:unit_cost;type:decimal(12,4);not null" json:"unit_cost"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:decimal(12,4);not null" json:"line_total"`
	LineCost    decimal.Decimal `gorm:"column:line_cost;type:decimal(12,4);not null" json:"line_cost"`
}

func (OrderItem) TableName() string {
	return "sales_order_item"
}
