package adminapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaleComputesDerivedFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/record_sale",
		`{"item_name":"Lace","price":5000,"quantity":2,"discount":500,"payment":9000}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sale recorded successfully!", resp["message"])
	require.NotEmpty(t, resp["receipt_file"])

	var sale domain.Sale
	require.NoError(t, env.app.DB().Where("item_name = ?", "Lace").First(&sale).Error)
	assert.Equal(t, 9500.0, sale.Total)
	assert.Equal(t, 500.0, sale.Balance)
	assert.NotEmpty(t, sale.Date)

	// the receipt landed as a text file with the sale transcript
	data, err := os.ReadFile(resp["receipt_file"])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Item: Lace")
	assert.Contains(t, string(data), "Total: ₦9500")

	// the outstanding balance makes this row a debt
	var debts struct {
		Data []domain.Sale `json:"data"`
	}
	env.getJSON(t, "/api/debts", &debts)
	require.Len(t, debts.Data, 1)
	assert.Equal(t, sale.ID, debts.Data[0].ID)
}

func TestRecordSaleDefaultsAndNegativeBalance(t *testing.T) {
	env := newTestEnv(t)

	// discount and payment default to zero
	rec := env.postJSON(t, "/record_sale",
		`{"item_name":"Cotton","price":100,"quantity":3}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sale domain.Sale
	require.NoError(t, env.app.DB().Where("item_name = ?", "Cotton").First(&sale).Error)
	assert.Equal(t, 300.0, sale.Total)
	assert.Equal(t, 300.0, sale.Balance)

	// overpayment is recorded as-is, no cross-validation
	rec = env.postJSON(t, "/record_sale",
		`{"item_name":"Silk","price":100,"quantity":1,"payment":150}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sale = domain.Sale{}
	require.NoError(t, env.app.DB().Where("item_name = ?", "Silk").First(&sale).Error)
	assert.Equal(t, -50.0, sale.Balance)
}

func TestRecordSaleRequiresItemName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/record_sale", `{"item_name":"  ","price":100,"quantity":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please provide valid sale details!")

	var count int64
	env.app.DB().Model(&domain.Sale{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteDebt(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/record_sale",
		`{"item_name":"Lace","price":5000,"quantity":2,"discount":500,"payment":9000}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sale domain.Sale
	require.NoError(t, env.app.DB().First(&sale).Error)

	rec = env.do(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/delete_debt/%d", sale.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Debt record deleted successfully!")

	var count int64
	env.app.DB().Model(&domain.Sale{}).Count(&count)
	assert.Zero(t, count)

	// deleting a missing id is a silent no-op
	rec = env.do(httptest.NewRequest(http.MethodPost, "/delete_debt/999999", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Debt record deleted successfully!")

	rec = env.do(httptest.NewRequest(http.MethodPost, "/delete_debt/notanumber", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebtsPageListsOutstandingRows(t *testing.T) {
	env := newTestEnv(t)

	env.postJSON(t, "/record_sale",
		`{"item_name":"Lace","price":5000,"quantity":2,"discount":500,"payment":9000}`, nil)
	env.postJSON(t, "/record_sale",
		`{"item_name":"Cotton","price":100,"quantity":1,"payment":100}`, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/debts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "Lace"))
	assert.False(t, strings.Contains(body, "Cotton"), "settled sale must not appear as debt")
}
