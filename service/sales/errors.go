package sales

import (
	"errors"
	"fmt"
)

// ErrEmptySale is returned when a sale request carries no items.
var ErrEmptySale = errors.New("sale must contain at least one item")

type InvalidPaymentMethodError struct {
	Method string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method %q", e.Method)
}

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found or not active", e.ProductID)
}

type CustomerNotFoundError struct {
	CustomerID uint
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %d not found", e.CustomerID)
}

type InvalidQuantityError struct {
	ProductID uint
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d", e.Quantity, e.ProductID)
}

// InsufficientStockError carries the product name and available quantity so
// callers can report requested vs available.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

// SaleError wraps any error raised mid-transaction during RecordSale. The
// wrapped transaction has always been rolled back when this surfaces.
type SaleError struct {
	Stage string
	Err   error
}

func (e *SaleError) Error() string {
	return fmt.Sprintf("sale failed at %s: %v", e.Stage, e.Err)
}

func (e *SaleError) Unwrap() error {
	return e.Err
}
