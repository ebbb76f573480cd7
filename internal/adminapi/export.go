package adminapi

import (
	"net/http"

	"github.com/gocarina/gocsv"
	"github.com/kanditextile/kandipos/internal/webserver"
	"github.com/labstack/echo/v4"
)

// registerExportRoutes registers the admin-gated data export endpoints.
func registerExportRoutes() {
	webserver.ApiGET("/admin/export/sales", exportSales)
}

// exportSales streams the full ledger as CSV.
func exportSales(c echo.Context) error {
	rows, err := ledgerSvc.Export(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query sales", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}
