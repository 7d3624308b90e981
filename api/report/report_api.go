package report

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopledger.GO/api"
	reportService "shopledger.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := reportService.NewService(db)

	// GET /api/dashboard – today's totals plus low stock count, cached briefly
	apiGroup.GET("/dashboard", func(c echo.Context) error {
		stats, err := svc.Dashboard(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, stats)
	})
}
