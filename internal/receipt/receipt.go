package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/pkg/errors"
)

// Receipt carries everything needed to print one sale transcript.
type Receipt struct {
	ShopName string
	Slogan   string
	Currency string
	Sale     domain.Sale
}

// Sink persists or forwards a formatted receipt. Implementations are
// selected at startup; callers treat emission as best effort and never
// fail a sale on a sink error.
type Sink interface {
	Emit(r Receipt) (string, error)
}

// Format renders the human-readable transcript for one sale.
func Format(r Receipt) string {
	cur := r.Currency
	if cur == "" {
		cur = "₦"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", r.ShopName, r.Slogan)
	b.WriteString("-----------------------------------------------\n")
	fmt.Fprintf(&b, "Date: %s\n", r.Sale.Date)
	fmt.Fprintf(&b, "Item: %s\n", r.Sale.ItemName)
	fmt.Fprintf(&b, "Price: %s%g\n", cur, r.Sale.Price)
	fmt.Fprintf(&b, "Quantity: %d\n", r.Sale.Quantity)
	fmt.Fprintf(&b, "Discount: %s%g\n", cur, r.Sale.Discount)
	fmt.Fprintf(&b, "Total: %s%g\n", cur, r.Sale.Total)
	fmt.Fprintf(&b, "Payment: %s%g\n", cur, r.Sale.Payment)
	fmt.Fprintf(&b, "Balance: %s%g\n", cur, r.Sale.Balance)
	b.WriteString("-----------------------------------------------\n")
	b.WriteString("Thank you for your purchase!\n")
	return b.String()
}

// FileSink writes receipts as text files named by timestamp.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

func (s *FileSink) Emit(r Receipt) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", errors.Wrap(err, "create receipt folder")
	}
	name := fmt.Sprintf("receipt_%s.txt", time.Now().Format("20060102150405"))
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, []byte(Format(r)), 0644); err != nil {
		return "", errors.Wrap(err, "write receipt")
	}
	return path, nil
}

// NoopSink discards receipts. Used when receipt emission is disabled.
type NoopSink struct{}

func (NoopSink) Emit(Receipt) (string, error) {
	return "", nil
}
