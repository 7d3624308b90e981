package sales

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopledger.GO/api"
	salesRepo "shopledger.GO/model/repository/sales"
	inventoryService "shopledger.GO/service/inventory"
	salesService "shopledger.GO/service/sales"
)

func init() {
	api.RegisterModule(RegisterSalesRoutes)
}

func RegisterSalesRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sales")
	compiler := salesService.NewCompiler(db)
	coordinator := salesService.NewCoordinator(db)

	// POST /api/sales – record a multi-item sale atomically
	g.POST("", func(c echo.Context) error {
		start := time.Now()

		var req salesService.SaleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		compiled, err := compiler.Compile(req)
		if err != nil {
			return c.JSON(statusForSaleError(err), echo.Map{"error": err.Error()})
		}

		res, err := coordinator.RecordSale(c.Request().Context(), compiled)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(statusForSaleError(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusCreated, res)
	})

	// GET /api/sales/recent?limit=10
	g.GET("/recent", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		orders, err := salesRepo.GetSalesRepository(db).RecentSales(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"sales": orders})
	})
}

// statusForSaleError maps the error taxonomy onto HTTP status codes.
func statusForSaleError(err error) int {
	var (
		paymentErr  *salesService.InvalidPaymentMethodError
		quantityErr *salesService.InvalidQuantityError
		notFound    *salesService.ProductNotFoundError
		custMissing *salesService.CustomerNotFoundError
		stockErr    *salesService.InsufficientStockError
		persistErr  *inventoryService.PersistenceError
	)
	switch {
	case errors.Is(err, salesService.ErrEmptySale),
		errors.As(err, &paymentErr),
		errors.As(err, &quantityErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &custMissing):
		return http.StatusNotFound
	case errors.As(err, &stockErr):
		return http.StatusConflict
	case errors.As(err, &persistErr):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
