package sales

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	salesEntity "shopledger.GO/model/entity/sales"
	catalogRepo "shopledger.GO/model/repository/catalog"
	customerRepo "shopledger.GO/model/repository/customer"
	salesRepo "shopledger.GO/model/repository/sales"
)

// SaleItemRequest is one requested line. UnitPrice overrides the catalog
// price when present.
type SaleItemRequest struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type SaleRequest struct {
	Items          []SaleItemRequest         `json:"items"`
	CustomerID     *uint                     `json:"customer_id,omitempty"`
	CustomerName   string                    `json:"customer_name"`
	PaymentMethod  salesEntity.PaymentMethod `json:"payment_method"`
	TaxAmount      decimal.Decimal           `json:"tax_amount"`
	DiscountAmount decimal.Decimal           `json:"discount_amount"`
	Notes          string                    `json:"notes,omitempty"`
	CreatedBy      string                    `json:"created_by,omitempty"`
}

type CompiledItem struct {
	ProductID   uint
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	LineTotal   decimal.Decimal
	LineCost    decimal.Decimal
}

// CompiledSale is the validated, fully priced sale ready for atomic commit.
type CompiledSale struct {
	OrderNumber    string
	Items          []CompiledItem
	CustomerID     *uint
	CustomerName   string
	PaymentMethod  salesEntity.PaymentMethod
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	TotalCost      decimal.Decimal
	Notes          string
	CreatedBy      string
}

// Compiler validates a sale request against a read snapshot of the catalog
// and computes line totals. Pure computation, no writes, no transaction.
type Compiler struct {
	db        *gorm.DB
	products  *catalogRepo.ProductRepository
	customers *customerRepo.CustomerRepository
	orders    *salesRepo.SalesRepository
}

func NewCompiler(db *gorm.DB) *Compiler {
	return &Compiler{
		db:        db,
		products:  catalogRepo.GetProductRepository(db),
		customers: customerRepo.GetCustomerRepository(db),
		orders:    salesRepo.GetSalesRepository(db),
	}
}

// Compile validates in order, first failure wins: non-empty items, payment
// method, then per item product existence/active, positive quantity, stock
// coverage. Duplicate product lines are merged (quantities summed, first
// explicit unit price kept) so one sale yields at most one ledger entry per
// product.
func (c *Compiler) Compile(req SaleRequest) (*CompiledSale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}
	if !req.PaymentMethod.Valid() {
		return nil, &InvalidPaymentMethodError{Method: string(req.PaymentMethod)}
	}

	merged := mergeItems(req.Items)

	customerName := strings.TrimSpace(req.CustomerName)
	if req.CustomerID != nil {
		cust, err := c.customers.FindByID(*req.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &CustomerNotFoundError{CustomerID: *req.CustomerID}
			}
			return nil, fmt.Errorf("customer lookup: %w", err)
		}
		if customerName == "" {
			customerName = cust.Name
		}
	}

	compiled := &CompiledSale{
		CustomerID:     req.CustomerID,
		CustomerName:   customerName,
		PaymentMethod:  req.PaymentMethod,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
	}

	for _, it := range merged {
		p, err := c.products.FindByID(it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ProductNotFoundError{ProductID: it.ProductID}
			}
			return nil, fmt.Errorf("product lookup: %w", err)
		}
		if !p.IsActive() {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if it.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: it.ProductID, Quantity: it.Quantity}
		}
		if p.StockQuantity < it.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   p.ProductID,
				ProductName: p.Name,
				Requested:   it.Quantity,
				Available:   p.StockQuantity,
			}
		}

		unitPrice := p.Price
		if it.UnitPrice != nil {
			unitPrice = *it.UnitPrice
		}
		qty := decimal.NewFromInt(int64(it.Quantity))
		item := CompiledItem{
			ProductID:   p.ProductID,
			ProductSKU:  p.SKU,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			UnitPrice:   unitPrice,
			UnitCost:    p.Cost,
			LineTotal:   unitPrice.Mul(qty),
			LineCost:    p.Cost.Mul(qty),
		}
		compiled.Items = append(compiled.Items, item)
		compiled.TotalAmount = compiled.TotalAmount.Add(item.LineTotal)
		compiled.TotalCost = compiled.TotalCost.Add(item.LineCost)
	}

	number, err := c.newOrderNumber()
	if err != nil {
		return nil, err
	}
	compiled.OrderNumber = number
	return compiled, nil
}

// mergeItems folds duplicate product lines, preserving the submitted order.
func mergeItems(items []SaleItemRequest) []SaleItemRequest {
	index := make(map[uint]int, len(items))
	out := make([]SaleItemRequest, 0, len(items))
	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			if out[i].UnitPrice == nil {
				out[i].UnitPrice = it.UnitPrice
			}
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out
}

// newOrderNumber derives a collision-checked order number from the date plus
// a random suffix, e.g. SO20260901-4F2A.
func (c *Compiler) newOrderNumber() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		buf := make([]byte, 2)
		_, _ = rand.Read(buf)
		n := fmt.Sprintf("SO%s-%s", time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
		exists, err := c.orders.OrderNumberExists(n)
		if err != nil {
			return "", fmt.Errorf("order number check: %w", err)
		}
		if !exists {
			return n, nil
		}
	}
	return "", errors.New("could not generate a unique order number")
}
