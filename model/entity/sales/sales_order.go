package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentTransfer    PaymentMethod = "transfer"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCheque      PaymentMethod = "cheque"
	PaymentCredit      PaymentMethod = "credit"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentMobileMoney, PaymentCheque, PaymentCredit:
		return true
	}
	return false
}

const (
	PaymentStatusPaid    = "paid"
	OrderStatusCompleted = "completed"
)

// Order is the aggregate root for one sale. Financial fields are immutable
// after commit; only notes and payment status may change afterwards.
type Order struct {
	OrderID        uint            `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	OrderNumber    string          `gorm:"column:order_number;type:varchar(32);not null;uniqueIndex" json:"order_number"`
	CustomerID     *uint           `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	CustomerName   string          `gorm:"column:customer_name;type:varchar(255)" json:"customer_name"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(12,4);not null" json:"total_amount"`
	TotalCost      decimal.Decimal `gorm:"column:total_cost;type:decimal(12,4);not null" json:"total_cost"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:decimal(12,4);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(12,4);not null;default:0" json:"discount_amount"`
	PaymentMethod  PaymentMethod   `gorm:"column:payment_method;type:varchar(16);not null" json:"payment_method"`
	PaymentStatus  string          `gorm:"column:payment_status;type:varchar(16);not null" json:"payment_status"`
	OrderStatus    string          `gorm:"column:order_status;type:varchar(16);not null" json:"order_status"`
	Notes          string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedBy      string          `gorm:"column:created_by;type:varchar(64)" json:"created_by"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "sales_order"
}
