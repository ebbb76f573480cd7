package domain

// Sale is one ledger row. Rows are immutable after insert; the only later
// operation is a delete by id when a debt is written off.
//
// ItemName is free text with no foreign key into products: renaming or
// deleting a catalog item never touches historical sales.
//
// Total and Balance are computed once at write time from caller-supplied
// inputs and never recomputed on read. A row with Balance > 0 is an
// outstanding debt.
//
// Date is kept as a local-clock string with second precision so the daily
// report can match rows by day prefix.
type Sale struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	ItemName string  `gorm:"index" json:"item_name" csv:"item_name"`
	Price    float64 `json:"price" csv:"price"`
	Quantity int     `json:"quantity" csv:"quantity"`
	Discount float64 `json:"discount" csv:"discount"`
	Total    float64 `json:"total" csv:"total"`
	Payment  float64 `json:"payment" csv:"payment"`
	Balance  float64 `gorm:"index" json:"balance" csv:"balance"`
	Date     string  `gorm:"index" json:"date" csv:"date"`
}

// TableName Specify table name
func (Sale) TableName() string {
	return "sales"
}

// DateLayout is the ledger timestamp format (local clock, second precision).
const DateLayout = "2006-01-02 15:04:05"

// DayLayout is the calendar-day prefix used by the daily report.
const DayLayout = "2006-01-02"
