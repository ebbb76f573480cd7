package adminapi_test

import (
	"net/http"
	"testing"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProductUpsertReplacesExisting(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginToken(t)

	rec := env.postJSON(t, "/admin/add_product",
		`{"name":"Ankara Fabric","price":2500,"quantity":10}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "added/updated successfully")

	rec = env.postJSON(t, "/admin/add_product",
		`{"name":"Ankara Fabric","price":3000,"quantity":4}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.Product
	require.NoError(t, env.app.DB().Where("name = ?", "Ankara Fabric").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 3000.0, rows[0].Price)
	assert.Equal(t, 4, rows[0].Quantity)
}

func TestAddProductValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginToken(t)

	for name, body := range map[string]string{
		"blank name":        `{"name":"  ","price":100,"quantity":1}`,
		"negative price":    `{"name":"Lace","price":-1,"quantity":1}`,
		"negative quantity": `{"name":"Lace","price":100,"quantity":-1}`,
	} {
		rec := env.postJSON(t, "/admin/add_product", body, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "Please provide valid product details!", name)
	}

	var count int64
	env.app.DB().Model(&domain.Product{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginToken(t)

	rec := env.postJSON(t, "/admin/add_product",
		`{"name":"Lace","price":5000,"quantity":3}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.postJSON(t, "/admin/delete_product", `{"name":"Lace"}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted successfully")

	var count int64
	env.app.DB().Model(&domain.Product{}).Count(&count)
	assert.Zero(t, count)

	// deleting a missing name is a no-op, not an error
	rec = env.postJSON(t, "/admin/delete_product", `{"name":"Lace"}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted successfully")

	rec = env.postJSON(t, "/admin/delete_product", `{"name":"   "}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid product name!")
}

func TestSearchProductCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginToken(t)

	rec := env.postJSON(t, "/admin/add_product",
		`{"name":"Ankara Fabric","price":2500,"quantity":10}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var results [][]interface{}
	rec = env.getJSON(t, "/search_product?q=ankara", &results)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, results, 1)
	assert.Equal(t, "Ankara Fabric", results[0][0])
	assert.Equal(t, 2500.0, results[0][1])
	assert.Equal(t, 10.0, results[0][2])

	results = nil
	rec = env.getJSON(t, "/search_product?q=xyz", &results)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, results)
}
