package customer

import (
	"sync"

	"gorm.io/gorm"

	customerEntity "shopledger.GO/model/entity/customer"
)

// CustomerRepository is a read-only lookup; customer management lives
// outside this engine.
type CustomerRepository struct {
	db *gorm.DB
}

var (
	customerRepoMu        sync.Mutex
	customerRepoInstances = map[*gorm.DB]*CustomerRepository{}
)

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetCustomerRepository returns a shared repository instance per DB handle.
func GetCustomerRepository(db *gorm.DB) *CustomerRepository {
	customerRepoMu.Lock()
	defer customerRepoMu.Unlock()
	if r, ok := customerRepoInstances[db]; ok {
		return r
	}
	r := NewCustomerRepository(db)
	customerRepoInstances[db] = r
	return r
}

func (r *CustomerRepository) FindByID(id uint) (*customerEntity.Customer, error) {
	var c customerEntity.Customer
	if err := r.db.First(&c, "customer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
