package jobs

import (
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	catalogRepo "shopledger.GO/model/repository/catalog"
)

var (
	dbMu sync.RWMutex
	db   *gorm.DB
)

// UseDB sets the database handle for scheduled jobs. Call once at startup
// before the scheduler runs.
func UseDB(d *gorm.DB) {
	dbMu.Lock()
	db = d
	dbMu.Unlock()
}

func jobDB() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// LowStockScanJob scans active products and logs every one at or below its
// minimum stock level so the nightly ops review can reorder.
func LowStockScanJob(args ...string) {
	d := jobDB()
	if d == nil {
		logrus.Warn("lowstockscan: no database handle, skipping")
		return
	}

	products, err := catalogRepo.GetProductRepository(d).LowStock()
	if err != nil {
		logrus.WithError(err).Error("lowstockscan: query failed")
		return
	}
	if len(products) == 0 {
		logrus.Info("lowstockscan: all products above minimum level")
		return
	}

	for _, p := range products {
		logrus.WithFields(logrus.Fields{
			"product_id": p.ProductID,
			"sku":        p.SKU,
			"stock":      p.StockQuantity,
			"min_level":  p.MinStockLevel,
		}).Warn("lowstockscan: product at or below minimum level")
	}
	logrus.WithField("count", len(products)).Info("lowstockscan: scan complete")
}
