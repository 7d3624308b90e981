package customer

import "time"

// Customer is a read-only lookup used to resolve customer_id on sales.
// Customer management lives outside this engine.
type Customer struct {
	CustomerID uint      `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      *string   `gorm:"column:email;type:varchar(128)" json:"email,omitempty"`
	Phone      *string   `gorm:"column:phone;type:varchar(32)" json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "customer_entity"
}
