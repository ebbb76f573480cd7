package adminapi

import (
	"net/http"
	"strconv"

	"github.com/kanditextile/kandipos/internal/app"
	"github.com/kanditextile/kandipos/internal/ledger"
	"github.com/kanditextile/kandipos/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var ledgerSvc *ledger.Service

// Register wires all POS routes. Must be called after webserver.Init.
func Register(svc *ledger.Service) {
	ledgerSvc = svc
	registerProductRoutes()
	registerSaleRoutes()
	registerReportRoutes()
	registerExportRoutes()
}

// GetAppContext returns the application container from the echo context.
func GetAppContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

// GetDB returns the request database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB().WithContext(c.Request().Context())
}

// ApiResponse is the unified JSON envelope for the admin API routes.
type ApiResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, ApiResponse{Code: "OK", Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ApiResponse{Code: code, Message: message, Detail: detail})
}

// message answers the legacy POS client contract: HTTP 200 with a plain
// {"message": ...} body, for success and validation failure alike.
func message(c echo.Context, text string) error {
	return c.JSON(http.StatusOK, map[string]string{"message": text})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
