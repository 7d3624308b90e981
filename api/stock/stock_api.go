package stock

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopledger.GO/api"
	catalogRepo "shopledger.GO/model/repository/catalog"
	ledgerRepo "shopledger.GO/model/repository/inventory"
	inventoryService "shopledger.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stock")
	accessor := inventoryService.NewStockAccessor(db)

	// POST /api/stock/adjust – manual stock correction (auth required via /api middleware)
	g.POST("/adjust", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			ProductID      uint   `json:"product_id"`
			QuantityChange int    `json:"quantity_change"`
			Reason         string `json:"reason"`
			Note           string `json:"note"`
			CreatedBy      string `json:"created_by"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
		}
		if body.QuantityChange == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity_change must be nonzero"})
		}

		entry, err := accessor.Adjust(c.Request().Context(), body.ProductID, body.QuantityChange, body.Reason, body.Note, body.CreatedBy)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			if errors.Is(err, inventoryService.ErrProductNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"transaction_number":  entry.TransactionNumber,
			"quantity_change":     entry.QuantityChange,
			"previous_stock":      entry.PreviousStock,
			"new_stock":           entry.NewStock,
			"request_duration_ms": duration,
		})
	})

	// GET /api/stock/low – products at or below their minimum level
	g.GET("/low", func(c echo.Context) error {
		products, err := catalogRepo.GetProductRepository(db).LowStock()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"products": products, "count": len(products)})
	})

	// GET /api/stock/history/:id?limit=50 – ledger entries for one product, newest first
	g.GET("/history/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))

		if _, err := catalogRepo.GetProductRepository(db).FindByID(uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		history, err := ledgerRepo.GetLedgerRepository(db).HistoryByProduct(uint(id), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"transactions": history, "count": len(history)})
	})
}
