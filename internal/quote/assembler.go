package quote

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/construinmuniza/cotizador/internal/catalog"
	"github.com/construinmuniza/cotizador/internal/money"
)

const defaultValidityDays = 30

var (
	// ErrNoItems indicates assembly was attempted with an empty item list.
	ErrNoItems = errors.New("quote: no items to assemble")
	// ErrBadDiscount indicates a discount outside [0,100].
	ErrBadDiscount = errors.New("quote: discount percent out of range")
)

// Assembler builds quotation records. The clock is injectable so numbering
// and expiry dates are testable.
type Assembler struct {
	now func() time.Time
}

// NewAssembler returns an assembler using the wall clock.
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// NewAssemblerAt returns an assembler with a fixed clock, for tests.
func NewAssemblerAt(now func() time.Time) *Assembler {
	return &Assembler{now: now}
}

// Assemble computes totals over items in input order and produces the
// quotation record. Items and client data are copied; later mutation of the
// caller's values does not affect the record.
//
// Computation order is fixed: per-item line total, subtotal, discount value
// (floored), total. A line item arriving with a reconciled LineTotal keeps
// it; everything else is recomputed from unit price and quantity.
func (a *Assembler) Assemble(items []LineItem, client Client, opts Options) (Quotation, error) {
	if len(items) == 0 {
		return Quotation{}, ErrNoItems
	}
	if opts.DiscountPercent < 0 || opts.DiscountPercent > 100 {
		return Quotation{}, fmt.Errorf("%w: %d", ErrBadDiscount, opts.DiscountPercent)
	}
	if opts.ValidityDays <= 0 {
		opts.ValidityDays = defaultValidityDays
	}
	if !opts.Location.Valid() {
		opts.Location = catalog.LocationCaldas
	}

	lines := make([]LineItem, len(items))
	copy(lines, items)

	var subtotal int64
	for i := range lines {
		if lines[i].Quantity < 1 {
			lines[i].Quantity = 1
		}
		if lines[i].LineTotal == 0 {
			lines[i].LineTotal = lines[i].UnitPrice * lines[i].Quantity
		}
		subtotal += lines[i].LineTotal
	}

	discountValue := subtotal * opts.DiscountPercent / 100
	now := a.now()

	return Quotation{
		Number:          Number(now),
		Date:            now,
		ExpiryDate:      now.AddDate(0, 0, opts.ValidityDays),
		Client:          client,
		Location:        opts.Location,
		TaxIncluded:     opts.TaxIncluded,
		Items:           lines,
		Subtotal:        subtotal,
		DiscountPercent: opts.DiscountPercent,
		DiscountValue:   discountValue,
		Total:           subtotal - discountValue,
		Terms:           DefaultTerms(),
	}, nil
}

// Number generates the quotation number: COT-MAD-<YYYYMM>-<last six digits
// of the unix timestamp>. Two generations inside the same second share a
// number; the short human-legible token is kept over a hard uniqueness
// guarantee.
func Number(now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return fmt.Sprintf("COT-MAD-%s-%s", now.Format("200601"), ts)
}

// SelectionItem converts a catalog search result plus an explicit quantity
// into a line item ready for assembly.
func SelectionItem(p catalog.FormattedProduct, quantity int64) LineItem {
	if quantity < 1 {
		quantity = 1
	}
	return LineItem{
		Reference:   p.Reference,
		Description: p.Description,
		Finish:      p.Finish,
		Use:         p.Use,
		Warranty:    p.Warranty,
		Quantity:    quantity,
		UnitPrice:   money.Round(p.PriceNumeric),
	}
}
