package report

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopledger.GO/config"
	"shopledger.GO/core/cache"
	catalogEntity "shopledger.GO/model/entity/catalog"
	inventoryEntity "shopledger.GO/model/entity/inventory"
	salesEntity "shopledger.GO/model/entity/sales"
	catalogRepo "shopledger.GO/model/repository/catalog"
	ledgerRepo "shopledger.GO/model/repository/inventory"
	salesRepo "shopledger.GO/model/repository/sales"
)

// Reports tolerate eventual consistency: cached values may lag the
// coordinator's commits by up to the TTL.
const (
	dashboardCacheKey = "report:dashboard"
	cacheTTLSeconds   = 30
	TagReports        = "reports"
)

type DashboardStats struct {
	Date          string          `json:"date" mapstructure:"date"`
	Revenue       decimal.Decimal `json:"revenue" mapstructure:"revenue"`
	Cost          decimal.Decimal `json:"cost" mapstructure:"cost"`
	Profit        decimal.Decimal `json:"profit" mapstructure:"profit"`
	Orders        int64           `json:"orders" mapstructure:"orders"`
	LowStockCount int64           `json:"low_stock_count" mapstructure:"low_stock_count"`
}

// Service is the read-only query surface over products, ledger and sales.
// It never mutates state.
type Service struct {
	db       *gorm.DB
	products *catalogRepo.ProductRepository
	ledger   *ledgerRepo.LedgerRepository
	orders   *salesRepo.SalesRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		products: catalogRepo.GetProductRepository(db),
		ledger:   ledgerRepo.GetLedgerRepository(db),
		orders:   salesRepo.GetSalesRepository(db),
	}
}

// LowStockProducts lists active products at or below their reorder threshold.
func (s *Service) LowStockProducts() ([]catalogEntity.Product, error) {
	return s.products.LowStock()
}

// RecentSales returns the latest committed orders, newest first.
func (s *Service) RecentSales(limit int) ([]salesEntity.Order, error) {
	return s.orders.RecentSales(limit)
}

// TransactionHistory returns a product's ledger entries, newest first.
func (s *Service) TransactionHistory(productID uint, limit int) ([]inventoryEntity.Transaction, error) {
	return s.ledger.HistoryByProduct(productID, limit)
}

// Dashboard aggregates today's revenue, orders and profit plus the low-stock
// count. Served from Redis when configured, the in-process cache otherwise.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if cached, ok := s.cachedDashboard(ctx); ok {
		return cached, nil
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day, err := s.orders.StatsSince(startOfDay)
	if err != nil {
		return nil, err
	}

	var lowStock int64
	if err := s.db.Model(&catalogEntity.Product{}).
		Where("stock_quantity <= min_stock_level AND status = ?", catalogEntity.StatusActive).
		Count(&lowStock).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Date:          startOfDay.Format("2006-01-02"),
		Revenue:       day.Revenue,
		Cost:          day.Cost,
		Profit:        day.Revenue.Sub(day.Cost),
		Orders:        day.Orders,
		LowStockCount: lowStock,
	}
	s.storeDashboard(ctx, stats)
	return stats, nil
}

func (s *Service) cachedDashboard(ctx context.Context) (*DashboardStats, bool) {
	if config.RedisClient != nil {
		raw, err := config.RedisClient.Get(ctx, dashboardCacheKey).Bytes()
		if err != nil {
			return nil, false
		}
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, false
		}
		stats, err := decodeDashboard(m)
		if err != nil {
			return nil, false
		}
		return stats, true
	}

	if v, ok := cache.GetInstance().Get(dashboardCacheKey); ok {
		if stats, isStats := v.(*DashboardStats); isStats {
			return stats, true
		}
	}
	return nil, false
}

func (s *Service) storeDashboard(ctx context.Context, stats *DashboardStats) {
	if config.RedisClient != nil {
		if b, err := json.Marshal(stats); err == nil {
			config.RedisClient.Set(ctx, dashboardCacheKey, b, cacheTTLSeconds*time.Second)
		}
		return
	}
	cache.GetInstance().Set(dashboardCacheKey, stats, cacheTTLSeconds, []string{TagReports})
}

// decodeDashboard maps a JSON-decoded map back onto DashboardStats.
// Decimal fields round-trip as strings, hence the decode hook.
func decodeDashboard(m map[string]interface{}) (*DashboardStats, error) {
	var stats DashboardStats
	cfg := &mapstructure.DecoderConfig{
		DecodeHook: stringToDecimalHook(),
		Result:     &stats,
		TagName:    "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, err
	}
	return &stats, nil
}

func stringToDecimalHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(decimal.Decimal{}) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(v)
		case float64:
			return decimal.NewFromFloat(v), nil
		}
		return data, nil
	}
}
