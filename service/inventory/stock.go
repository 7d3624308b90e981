package inventory

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shopledger.GO/config"
	inventoryEntity "shopledger.GO/model/entity/inventory"
	catalogRepo "shopledger.GO/model/repository/catalog"
	ledgerRepo "shopledger.GO/model/repository/inventory"
)

// ChangeRef links a stock change to its cause. Number becomes the ledger
// entry's reference_number and participates in the idempotency index.
type ChangeRef struct {
	Type      string
	ID        uint
	Number    string
	Note      string
	CreatedBy string
}

// StockAccessor is the only mutation gate for Product.StockQuantity. Every
// change reads the product under a row lock, writes the new quantity, and
// appends the matching ledger entry — all inside the caller's transaction.
type StockAccessor struct {
	db       *gorm.DB
	products *catalogRepo.ProductRepository
	ledger   *ledgerRepo.LedgerRepository
}

func NewStockAccessor(db *gorm.DB) *StockAccessor {
	return &StockAccessor{
		db:       db,
		products: catalogRepo.GetProductRepository(db),
		ledger:   ledgerRepo.GetLedgerRepository(db),
	}
}

// ApplyChange applies a signed stock change for productID and appends the
// ledger entry describing it. A change that would drive stock negative is
// clamped: new stock becomes 0 and the applied change drains only what
// exists. The returned entry carries the applied change and new stock.
//
// Steps run on tx; the accessor holds no transaction boundary of its own.
func (a *StockAccessor) ApplyChange(tx *gorm.DB, productID uint, typ inventoryEntity.TransactionType, requestedChange int, ref ChangeRef) (*inventoryEntity.Transaction, error) {
	p, err := a.products.LockForUpdate(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, &PersistenceError{Op: "product lock", Err: err}
	}

	previous := p.StockQuantity
	applied := requestedChange
	newStock := previous + requestedChange
	if newStock < 0 {
		// Clamp policy: drain only what exists instead of rejecting.
		newStock = 0
		applied = -previous
	}

	if err := a.products.UpdateStockQuantity(tx, productID, newStock); err != nil {
		return nil, &PersistenceError{Op: "stock update", Err: err}
	}

	entry := &inventoryEntity.Transaction{
		ProductID:      productID,
		ProductSKU:     p.SKU,
		Type:           typ,
		QuantityChange: applied,
		PreviousStock:  previous,
		NewStock:       newStock,
		UnitCost:       p.Cost,
		ReferenceType:  ref.Type,
		ReferenceID:    ref.ID,
		CreatedBy:      ref.CreatedBy,
	}
	if ref.Number != "" {
		n := ref.Number
		entry.ReferenceNumber = &n
	}
	if ref.Note != "" || applied != requestedChange {
		meta := map[string]interface{}{}
		if ref.Note != "" {
			meta["note"] = ref.Note
		}
		if applied != requestedChange {
			meta["requested_change"] = requestedChange
		}
		if b, err := json.Marshal(meta); err == nil {
			entry.Meta = datatypes.JSON(b)
		}
	}

	if err := a.ledger.Append(tx, entry); err != nil {
		return nil, &PersistenceError{Op: "ledger append", Err: err}
	}
	return entry, nil
}

// Adjust books a manual stock adjustment as a single transaction.
func (a *StockAccessor) Adjust(ctx context.Context, productID uint, quantityChange int, reason string, note string, createdBy string) (*inventoryEntity.Transaction, error) {
	var entry *inventoryEntity.Transaction
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = a.ApplyChange(tx, productID, inventoryEntity.TypeAdjustment, quantityChange, ChangeRef{
			Type:      inventoryEntity.RefManualAdjustment,
			Note:      joinReason(reason, note),
			CreatedBy: createdBy,
		})
		return err
	})
	if err != nil {
		config.LogError(config.GetLogger(), "inventory", "Adjust", "stock adjustment", map[string]interface{}{
			"product_id": productID,
			"change":     quantityChange,
		}, err)
		return nil, err
	}
	return entry, nil
}

// ReceiveInitialStock books the starting quantity of a newly created product.
// Called once at product creation when the initial quantity is nonzero.
func (a *StockAccessor) ReceiveInitialStock(ctx context.Context, productID uint, quantity int) (*inventoryEntity.Transaction, error) {
	if quantity <= 0 {
		return nil, errors.New("initial stock quantity must be positive")
	}
	var entry *inventoryEntity.Transaction
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = a.ApplyChange(tx, productID, inventoryEntity.TypeInitial, quantity, ChangeRef{
			Type:      inventoryEntity.RefProductCreation,
			ID:        productID,
			CreatedBy: "system",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func joinReason(reason, note string) string {
	switch {
	case reason == "":
		return note
	case note == "":
		return reason
	default:
		return reason + ": " + note
	}
}
