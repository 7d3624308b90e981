package graphqlserver

import (
	"time"

	gqlmodels "shopledger.GO/graphql/models"
	catalogEntity "shopledger.GO/model/entity/catalog"
	inventoryEntity "shopledger.GO/model/entity/inventory"
	salesEntity "shopledger.GO/model/entity/sales"
	reportService "shopledger.GO/service/report"
)

func mapProduct(p *catalogEntity.Product) *gqlmodels.Product {
	return &gqlmodels.Product{
		ProductID:     int32(p.ProductID),
		SKU:           p.SKU,
		Name:          p.Name,
		Price:         p.Price.String(),
		Cost:          p.Cost.String(),
		StockQuantity: int32(p.StockQuantity),
		MinStockLevel: int32(p.MinStockLevel),
		Status:        p.Status,
	}
}

func mapDashboard(s *reportService.DashboardStats) *gqlmodels.Dashboard {
	return &gqlmodels.Dashboard{
		Date:          s.Date,
		Revenue:       s.Revenue.String(),
		Cost:          s.Cost.String(),
		Profit:        s.Profit.String(),
		Orders:        int32(s.Orders),
		LowStockCount: int32(s.LowStockCount),
	}
}

func mapSale(o *salesEntity.Order) *gqlmodels.Sale {
	sale := &gqlmodels.Sale{
		OrderID:       int32(o.OrderID),
		OrderNumber:   o.OrderNumber,
		TotalAmount:   o.TotalAmount.String(),
		TotalCost:     o.TotalCost.String(),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		Items:         make([]*gqlmodels.SaleItem, 0, len(o.Items)),
	}
	if o.CustomerName != "" {
		name := o.CustomerName
		sale.CustomerName = &name
	}
	for i := range o.Items {
		it := &o.Items[i]
		sale.Items = append(sale.Items, &gqlmodels.SaleItem{
			ProductID:   int32(it.ProductID),
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    int32(it.Quantity),
			UnitPrice:   it.UnitPrice.String(),
			LineTotal:   it.LineTotal.String(),
		})
	}
	return sale
}

func mapTransaction(t *inventoryEntity.Transaction) *gqlmodels.StockTransaction {
	st := &gqlmodels.StockTransaction{
		TransactionID:     int32(t.TransactionID),
		TransactionNumber: t.TransactionNumber,
		ProductID:         int32(t.ProductID),
		ProductSKU:        t.ProductSKU,
		Type:              string(t.Type),
		QuantityChange:    int32(t.QuantityChange),
		PreviousStock:     int32(t.PreviousStock),
		NewStock:          int32(t.NewStock),
		ReferenceNumber:   t.ReferenceNumber,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
	if t.ReferenceType != "" {
		rt := t.ReferenceType
		st.ReferenceType = &rt
	}
	if t.CreatedBy != "" {
		by := t.CreatedBy
		st.CreatedBy = &by
	}
	return st
}
