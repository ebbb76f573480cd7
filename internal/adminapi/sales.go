package adminapi

import (
	"net/http"

	"github.com/kanditextile/kandipos/internal/ledger"
	"github.com/kanditextile/kandipos/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type salePayload struct {
	ItemName string  `json:"item_name" form:"item_name"`
	Price    float64 `json:"price" form:"price"`
	Quantity int     `json:"quantity" form:"quantity"`
	Discount float64 `json:"discount" form:"discount"`
	Payment  float64 `json:"payment" form:"payment"`
}

// registerSaleRoutes registers the public ledger endpoints. Recording a
// sale and writing off a debt happen at the counter, so neither is gated.
func registerSaleRoutes() {
	webserver.POST("/record_sale", recordSale)
	webserver.POST("/delete_debt/:id", deleteDebt)
}

func recordSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return message(c, "Please provide valid sale details!")
	}

	_, receiptFile, err := ledgerSvc.RecordSale(c.Request().Context(), ledger.RecordSaleInput{
		ItemName: payload.ItemName,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		Discount: payload.Discount,
		Payment:  payload.Payment,
	})
	if errors.Is(err, ledger.ErrItemNameRequired) {
		return message(c, "Please provide valid sale details!")
	}
	if err != nil {
		return err
	}

	resp := map[string]string{"message": "Sale recorded successfully!"}
	if receiptFile != "" {
		resp["receipt_file"] = receiptFile
	}
	return c.JSON(http.StatusOK, resp)
}

// deleteDebt writes off a debt by deleting its sale row. A non-existent
// id is a silent no-op; a store failure surfaces the raw error text.
func deleteDebt(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid debt ID", nil)
	}

	if err := ledgerSvc.WriteOff(c.Request().Context(), id); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return message(c, "Debt record deleted successfully!")
}
