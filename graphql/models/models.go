package models

// --- Product ---

type Product struct {
	ProductID     int32  `json:"productId"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Cost          string `json:"cost"`
	StockQuantity int32  `json:"stockQuantity"`
	MinStockLevel int32  `json:"minStockLevel"`
	Status        string `json:"status"`
}

// --- Dashboard ---

type Dashboard struct {
	Date          string `json:"date"`
	Revenue       string `json:"revenue"`
	Cost          string `json:"cost"`
	Profit        string `json:"profit"`
	Orders        int32  `json:"orders"`
	LowStockCount int32  `json:"lowStockCount"`
}

// --- Sales ---

type Sale struct {
	OrderID       int32       `json:"orderId"`
	OrderNumber   string      `json:"orderNumber"`
	CustomerName  *string     `json:"customerName,omitempty"`
	TotalAmount   string      `json:"totalAmount"`
	TotalCost     string      `json:"totalCost"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentStatus string      `json:"paymentStatus"`
	CreatedAt     string      `json:"createdAt"`
	Items         []*SaleItem `json:"items"`
}

type SaleItem struct {
	ProductID   int32  `json:"productId"`
	ProductSKU  string `json:"productSku"`
	ProductName string `json:"productName"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

// --- Ledger ---

type StockTransaction struct {
	TransactionID     int32   `json:"transactionId"`
	TransactionNumber string  `json:"transactionNumber"`
	ProductID         int32   `json:"productId"`
	ProductSKU        string  `json:"productSku"`
	Type              string  `json:"type"`
	QuantityChange    int32   `json:"quantityChange"`
	PreviousStock     int32   `json:"previousStock"`
	NewStock          int32   `json:"newStock"`
	ReferenceType     *string `json:"referenceType,omitempty"`
	ReferenceNumber   *string `json:"referenceNumber,omitempty"`
	CreatedBy         *string `json:"createdBy,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}
