package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/kanditextile/kandipos/internal/receipt"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrItemNameRequired rejects sales without an item name. It is the only
// cross-field check the ledger does: prices, quantities and payments are
// recorded exactly as supplied, and the catalog is never consulted.
var ErrItemNameRequired = errors.New("item name is required")

// Settings supplies the receipt header values from sys_config.
type Settings interface {
	GetSettingsStringValue(category, key string) string
}

// RecordSaleInput carries caller-supplied transaction fields. Discount
// and payment default to zero.
type RecordSaleInput struct {
	ItemName string
	Price    float64
	Quantity int
	Discount float64
	Payment  float64
}

// DayStats summarizes per-sale totals for one calendar day.
type DayStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// BusEventSaleRecorded mirrors app.EventSaleRecorded; declared here so the
// ledger does not import the application container.
const BusEventSaleRecorded = "pos.sale.recorded"

// Service is the append-only sales ledger. Every recorded sale gets its
// total and balance computed once here, a bus event for subscribers, and
// a best-effort receipt.
type Service struct {
	repo     SaleRepository
	bus      EventBus.Bus
	sink     receipt.Sink
	settings Settings
	now      func() time.Time
}

func NewService(repo SaleRepository, bus EventBus.Bus, sink receipt.Sink, settings Settings) *Service {
	return &Service{
		repo:     repo,
		bus:      bus,
		sink:     sink,
		settings: settings,
		now:      time.Now,
	}
}

// RecordSale computes total = price*quantity - discount and
// balance = total - payment, then persists the row with a server-assigned
// timestamp. Inconsistent inputs may yield negative totals or balances;
// that is recorded as-is. Returns the stored sale and the receipt file
// path, which is empty when the sink is disabled or failed.
func (s *Service) RecordSale(ctx context.Context, in RecordSaleInput) (*domain.Sale, string, error) {
	if strings.TrimSpace(in.ItemName) == "" {
		return nil, "", ErrItemNameRequired
	}

	total := in.Price*float64(in.Quantity) - in.Discount
	sale := &domain.Sale{
		ItemName: in.ItemName,
		Price:    in.Price,
		Quantity: in.Quantity,
		Discount: in.Discount,
		Total:    total,
		Payment:  in.Payment,
		Balance:  total - in.Payment,
		Date:     s.now().Format(domain.DateLayout),
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, "", errors.Wrap(err, "record sale")
	}

	if s.bus != nil {
		s.bus.Publish(BusEventSaleRecorded, sale)
	}

	receiptFile := s.emitReceipt(sale)
	return sale, receiptFile, nil
}

// emitReceipt is best effort: a sink failure is logged and never fails
// the parent sale.
func (s *Service) emitReceipt(sale *domain.Sale) string {
	if s.sink == nil {
		return ""
	}
	r := receipt.Receipt{
		ShopName: s.settings.GetSettingsStringValue("pos", "ShopName"),
		Slogan:   s.settings.GetSettingsStringValue("pos", "ShopSlogan"),
		Currency: s.settings.GetSettingsStringValue("pos", "CurrencySymbol"),
		Sale:     *sale,
	}
	path, err := s.sink.Emit(r)
	if err != nil {
		zap.L().Error("receipt emit failed", zap.Int64("sale_id", sale.ID), zap.Error(err))
		return ""
	}
	return path
}

// WriteOff deletes a sale row by id. A missing id is a silent no-op; the
// underlying delete reports no distinct not-found signal.
func (s *Service) WriteOff(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

// Debts returns all rows with a positive balance, in store order.
func (s *Service) Debts(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListDebts(ctx)
}

// DailyTotals aggregates one calendar day by date-string prefix.
func (s *Service) DailyTotals(ctx context.Context, day string) (DayTotals, error) {
	return s.repo.SumByDay(ctx, day)
}

// DailyStats computes mean/median/max of per-sale totals for one day.
// An empty day yields all zeros.
func (s *Service) DailyStats(ctx context.Context, day string) (DayStats, error) {
	rows, err := s.repo.ListByDay(ctx, day)
	if err != nil {
		return DayStats{}, err
	}
	if len(rows) == 0 {
		return DayStats{}, nil
	}

	totals := make([]float64, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, row.Total)
	}

	mean, _ := stats.Mean(totals)
	median, _ := stats.Median(totals)
	max, _ := stats.Max(totals)
	return DayStats{Count: len(rows), Mean: mean, Median: median, Max: max}, nil
}

// Export returns the full ledger for CSV export.
func (s *Service) Export(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListAll(ctx)
}
