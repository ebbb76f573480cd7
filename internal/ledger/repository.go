package ledger

import (
	"context"

	"github.com/kanditextile/kandipos/internal/domain"
	"gorm.io/gorm"
)

// DayTotals aggregates one calendar day of the ledger. Sums are
// NULL-coalesced so a day with no sales reports zeros.
type DayTotals struct {
	TotalSales float64 `json:"total_sales"`
	TotalCash  float64 `json:"total_cash"`
	TotalDebts float64 `json:"total_debts"`
}

// SaleRepository handles database operations for ledger rows
type SaleRepository interface {
	// Create inserts a new sale row
	Create(ctx context.Context, sale *domain.Sale) error

	// DeleteByID removes a sale row; deleting a missing id is a no-op
	DeleteByID(ctx context.Context, id int64) error

	// GetByID retrieves a sale row by ID
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)

	// ListDebts retrieves all rows with a positive balance, store order
	ListDebts(ctx context.Context) ([]domain.Sale, error)

	// ListByDay retrieves all rows whose date starts with the given day
	ListByDay(ctx context.Context, day string) ([]domain.Sale, error)

	// ListAll retrieves the full ledger, store order
	ListAll(ctx context.Context) ([]domain.Sale, error)

	// SumByDay aggregates total/payment/balance for one calendar day
	SumByDay(ctx context.Context, day string) (DayTotals, error)
}

// GormSaleRepository is the GORM implementation of SaleRepository
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GORM-based repository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *GormSaleRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Sale{}).Error
}

func (r *GormSaleRepository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithContext(ctx).First(&sale, id).Error
	return &sale, err
}

func (r *GormSaleRepository) ListDebts(ctx context.Context) ([]domain.Sale, error) {
	var rows []domain.Sale
	err := r.db.WithContext(ctx).Where("balance > 0").Find(&rows).Error
	return rows, err
}

func (r *GormSaleRepository) ListByDay(ctx context.Context, day string) ([]domain.Sale, error) {
	var rows []domain.Sale
	err := r.db.WithContext(ctx).Where("date LIKE ?", day+"%").Find(&rows).Error
	return rows, err
}

func (r *GormSaleRepository) ListAll(ctx context.Context) ([]domain.Sale, error) {
	var rows []domain.Sale
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *GormSaleRepository) SumByDay(ctx context.Context, day string) (DayTotals, error) {
	var totals DayTotals
	err := r.db.WithContext(ctx).Model(&domain.Sale{}).
		Select("COALESCE(SUM(total), 0) as total_sales, COALESCE(SUM(payment), 0) as total_cash, COALESCE(SUM(balance), 0) as total_debts").
		Where("date LIKE ?", day+"%").
		Scan(&totals).Error
	return totals, err
}
