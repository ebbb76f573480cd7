package adminapi

import (
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/kanditextile/kandipos/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// registerReportRoutes registers the read-only reporting endpoints.
func registerReportRoutes() {
	webserver.GET("/debts", debtsPage)
	webserver.GET("/api/debts", listDebts)
	webserver.GET("/daily_report", dailyReport)
}

func debtsPage(c echo.Context) error {
	rows, err := ledgerSvc.Debts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "debts.html", map[string]interface{}{
		"Debts": rows,
	})
}

func listDebts(c echo.Context) error {
	rows, err := ledgerSvc.Debts(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query debts", err.Error())
	}
	return ok(c, rows)
}

// reportDay resolves the requested calendar day. The date parameter is
// parsed leniently; anything unreadable falls back to today.
func reportDay(c echo.Context) string {
	raw := c.QueryParam("date")
	if raw == "" {
		return time.Now().Format(domain.DayLayout)
	}
	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		zap.L().Warn("unparseable report date, using today", zap.String("date", raw))
		return time.Now().Format(domain.DayLayout)
	}
	return t.Format(domain.DayLayout)
}

func dailyReport(c echo.Context) error {
	ctx := c.Request().Context()
	day := reportDay(c)

	totals, err := ledgerSvc.DailyTotals(ctx, day)
	if err != nil {
		return err
	}
	stat, err := ledgerSvc.DailyStats(ctx, day)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "daily_report.html", map[string]interface{}{
		"Day":        day,
		"TotalSales": totals.TotalSales,
		"TotalCash":  totals.TotalCash,
		"TotalDebts": totals.TotalDebts,
		"Count":      stat.Count,
		"Mean":       stat.Mean,
		"Median":     stat.Median,
		"Max":        stat.Max,
	})
}
