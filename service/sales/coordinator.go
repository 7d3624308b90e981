package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopledger.GO/config"
	inventoryEntity "shopledger.GO/model/entity/inventory"
	salesEntity "shopledger.GO/model/entity/sales"
	salesRepo "shopledger.GO/model/repository/sales"
	inventoryService "shopledger.GO/service/inventory"
)

// ShortFill reports a line where the clamp policy drained less stock than the
// sale requested. The sale still committed; UIs should warn about
// under-fulfillment.
type ShortFill struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Applied     int    `json:"applied"`
}

type SaleResult struct {
	SaleID      uint            `json:"sale_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Profit      decimal.Decimal `json:"profit"`
	ItemsCount  int             `json:"items_count"`
	ShortFills  []ShortFill     `json:"short_fills,omitempty"`
}

// Coordinator commits a compiled sale as one atomic transaction: order row,
// line items, stock decrements, ledger entries. On any failure the whole
// transaction rolls back and no trace of the sale remains.
type Coordinator struct {
	db     *gorm.DB
	stock  *inventoryService.StockAccessor
	orders *salesRepo.SalesRepository
}

func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{
		db:     db,
		stock:  inventoryService.NewStockAccessor(db),
		orders: salesRepo.GetSalesRepository(db),
	}
}

// RecordSale runs the commit protocol. Items are processed in the order
// submitted. A line whose product drained to nothing mid-flight (a concurrent
// sale won the stock) aborts with InsufficientStockError; a partial drain
// commits and is reported as a ShortFill.
func (co *Coordinator) RecordSale(ctx context.Context, compiled *CompiledSale) (*SaleResult, error) {
	var result *SaleResult

	err := co.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := &salesEntity.Order{
			OrderNumber:    compiled.OrderNumber,
			CustomerID:     compiled.CustomerID,
			CustomerName:   compiled.CustomerName,
			TotalAmount:    compiled.TotalAmount,
			TotalCost:      compiled.TotalCost,
			TaxAmount:      compiled.TaxAmount,
			DiscountAmount: compiled.DiscountAmount,
			PaymentMethod:  compiled.PaymentMethod,
			PaymentStatus:  salesEntity.PaymentStatusPaid,
			OrderStatus:    salesEntity.OrderStatusCompleted,
			Notes:          compiled.Notes,
			CreatedBy:      compiled.CreatedBy,
		}
		if err := co.orders.InsertOrder(tx, order); err != nil {
			return &SaleError{Stage: "order insert", Err: err}
		}

		var shortFills []ShortFill
		for _, it := range compiled.Items {
			item := &salesEntity.OrderItem{
				OrderID:     order.OrderID,
				ProductID:   it.ProductID,
				ProductSKU:  it.ProductSKU,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				UnitCost:    it.UnitCost,
				LineTotal:   it.LineTotal,
				LineCost:    it.LineCost,
			}
			if err := co.orders.InsertItem(tx, item); err != nil {
				return &SaleError{Stage: "item insert", Err: err}
			}

			entry, err := co.stock.ApplyChange(tx, it.ProductID, inventoryEntity.TypeSale, -it.Quantity, inventoryService.ChangeRef{
				Type:      inventoryEntity.RefSalesOrder,
				ID:        order.OrderID,
				Number:    order.OrderNumber,
				CreatedBy: compiled.CreatedBy,
			})
			if err != nil {
				return &SaleError{Stage: "stock apply", Err: err}
			}

			applied := -entry.QuantityChange
			if applied == 0 && it.Quantity > 0 {
				// Nothing fulfillable: a concurrent sale drained the product
				// after compile. The sale must not exist.
				return &SaleError{Stage: "stock apply", Err: &InsufficientStockError{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Requested:   it.Quantity,
					Available:   0,
				}}
			}
			if applied < it.Quantity {
				shortFills = append(shortFills, ShortFill{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Requested:   it.Quantity,
					Applied:     applied,
				})
			}
		}

		result = &SaleResult{
			SaleID:      order.OrderID,
			OrderNumber: order.OrderNumber,
			TotalAmount: order.TotalAmount,
			TotalCost:   order.TotalCost,
			Profit:      order.TotalAmount.Sub(order.TotalCost),
			ItemsCount:  len(compiled.Items),
			ShortFills:  shortFills,
		}
		return nil
	})
	if err != nil {
		config.LogError(config.GetLogger(), "sales", "RecordSale", "sale rolled back", map[string]interface{}{
			"order_number": compiled.OrderNumber,
		}, err)
		return nil, err
	}

	config.GetLogger().WithField("order_number", result.OrderNumber).
		WithField("total_amount", result.TotalAmount.String()).
		Info("sale committed")
	return result, nil
}
