package extract

import (
	"errors"

	"github.com/construinmuniza/cotizador/internal/quote"
)

// ErrNoPriceFound indicates the text yields zero price candidates. Callers
// route this to the manual-entry fallback; it is not fatal.
var ErrNoPriceFound = errors.New("extract: no price found in text")

// Resolve combines price extraction, quantity extraction and product
// identification into a single line item.
//
// Policy: the smallest plausible price is the unit price and the first
// quantity candidate (default 1) is the count. When a larger price
// candidate also appears it is reconciled against unit*quantity: within the
// tolerance it becomes the authoritative line total; beyond it, the larger
// value is taken as the total and the unit price is back-computed by
// integer division (the remainder is accepted loss). No sentence structure
// is parsed; magnitude ordering and proportional tolerance are the only
// tie-breaks.
func (e *Extractor) Resolve(text string) (*quote.LineItem, error) {
	prices := e.Prices(text)
	if len(prices) == 0 {
		return nil, ErrNoPriceFound
	}

	quantity := int64(1)
	if quantities := e.Quantities(text); len(quantities) > 0 {
		quantity = quantities[0]
	}

	unitPrice := prices[0]
	lineTotal := unitPrice * quantity

	if len(prices) > 1 {
		largest := prices[len(prices)-1]
		naive := unitPrice * quantity
		tolerance := naive * e.cfg.TolerancePercent / 100

		switch {
		case abs(largest-naive) <= tolerance:
			// The text states both a unit price and a rounded total.
			lineTotal = largest
		case largest > naive+tolerance:
			lineTotal = largest
			if quantity > 1 {
				unitPrice = largest / quantity
			} else {
				unitPrice = largest
			}
		}
		// A largest candidate below tolerance of the naive total is noise;
		// the computed total stands.
	}

	reference, description := IdentifyProduct(text)

	return &quote.LineItem{
		Reference:   reference,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Tax:         0,
		LineTotal:   lineTotal,
		Weight:      e.cfg.DefaultWeight,
	}, nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
