package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/kanditextile/kandipos/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm/clause"
)

type productPayload struct {
	Name     string  `json:"name" form:"name"`
	Price    float64 `json:"price" form:"price"`
	Quantity int     `json:"quantity" form:"quantity"`
}

type deleteProductPayload struct {
	Name string `json:"name" form:"name"`
}

// registerProductRoutes registers catalog endpoints. Mutations sit behind
// the admin gate; search is public so the sales page can use it.
func registerProductRoutes() {
	webserver.ApiPOST("/admin/add_product", addProduct)
	webserver.ApiPOST("/admin/delete_product", deleteProduct)
	webserver.GET("/search_product", searchProduct)
}

// addProduct upserts by name: an existing product keeps its id and gets
// the new price and quantity.
func addProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return message(c, "Please provide valid product details!")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" || payload.Price < 0 || payload.Quantity < 0 {
		return message(c, "Please provide valid product details!")
	}

	now := time.Now()
	p := domain.Product{
		Name:      payload.Name,
		Price:     payload.Price,
		Quantity:  payload.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := GetDB(c).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"price":      payload.Price,
			"quantity":   payload.Quantity,
			"updated_at": now,
		}),
	}).Create(&p).Error
	if err != nil {
		return err
	}

	return message(c, fmt.Sprintf("Product '%s' added/updated successfully!", payload.Name))
}

// deleteProduct removes a product by name; a missing name is a no-op.
func deleteProduct(c echo.Context) error {
	var payload deleteProductPayload
	if err := c.Bind(&payload); err != nil {
		return message(c, "Invalid product name!")
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return message(c, "Invalid product name!")
	}

	if err := GetDB(c).Where("name = ?", name).Delete(&domain.Product{}).Error; err != nil {
		return err
	}

	return message(c, fmt.Sprintf("Product '%s' deleted successfully!", name))
}

// searchProduct does a case-insensitive substring match over names and
// returns [name, price, quantity] triples in store order.
func searchProduct(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	db := GetDB(c)
	query := db.Model(&domain.Product{})
	if strings.EqualFold(db.Name(), "postgres") {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	} else {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var rows []domain.Product
	if err := query.Find(&rows).Error; err != nil {
		return err
	}

	results := make([][]interface{}, 0, len(rows))
	for _, p := range rows {
		results = append(results, []interface{}{p.Name, p.Price, p.Quantity})
	}
	return c.JSON(http.StatusOK, results)
}
