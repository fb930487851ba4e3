// Package quote assembles the canonical quotation record: client data,
// priced line items, totals and terms. The record is immutable once built;
// changing anything means assembling a fresh one.
package quote

import (
	"time"

	"github.com/construinmuniza/cotizador/internal/catalog"
)

// LineItem is one priced product entry. Money is integer pesos.
//
// LineTotal normally equals UnitPrice*Quantity; the free-text resolver may
// override it when the source text states an authoritative total (see the
// extract package).
type LineItem struct {
	Reference   string `json:"reference"`
	Description string `json:"description"`
	Finish      string `json:"finish,omitempty"`
	Use         string `json:"use,omitempty"`
	Warranty    string `json:"warranty,omitempty"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Tax         int64  `json:"tax"`
	LineTotal   int64  `json:"line_total"`
	Weight      int64  `json:"weight"`
}

// Client identifies who the quotation is for.
type Client struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Options are the assembly knobs chosen per quotation.
type Options struct {
	Location        catalog.Location `json:"location"`
	TaxIncluded     bool             `json:"tax_included"`
	DiscountPercent int64            `json:"discount_percent"`
	ValidityDays    int              `json:"validity_days"`
}

// Quotation is the finalized record handed to rendering. The renderer must
// never re-derive a value present here.
type Quotation struct {
	Number          string           `json:"number"`
	Date            time.Time        `json:"date"`
	ExpiryDate      time.Time        `json:"expiry_date"`
	Client          Client           `json:"client"`
	Location        catalog.Location `json:"location"`
	TaxIncluded     bool             `json:"tax_included"`
	Items           []LineItem       `json:"items"`
	Subtotal        int64            `json:"subtotal"`
	DiscountPercent int64            `json:"discount_percent"`
	DiscountValue   int64            `json:"discount_value"`
	Total           int64            `json:"total"`
	Terms           []string         `json:"terms"`
}
