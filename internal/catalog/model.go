// Package catalog holds the in-memory product catalog loaded from the
// price-list spreadsheet and the substring search used to pick quotation
// items. The store is owned by a single session; everything else reads it.
package catalog

import "github.com/construinmuniza/cotizador/internal/money"

// Location selects one of the two pricing zones. Each zone carries a
// tax-inclusive and a tax-exclusive price column in the spreadsheet.
type Location string

const (
	LocationCaldas   Location = "caldas"
	LocationChagualo Location = "chagualo"
)

// DisplayName returns the human-readable zone name used on documents.
func (l Location) DisplayName() string {
	if l == LocationChagualo {
		return "Chagualo, Girardota, San Cristóbal"
	}
	return "Caldas"
}

// Valid reports whether l is one of the supported zones.
func (l Location) Valid() bool {
	return l == LocationCaldas || l == LocationChagualo
}

// PriceSet carries the four price variants of a product row, exactly as
// normalized from the spreadsheet.
type PriceSet struct {
	CaldasExclTax   float64 `json:"caldas_sin_iva"`
	CaldasInclTax   float64 `json:"caldas_con_iva"`
	ChagualoExclTax float64 `json:"chagualo_sin_iva"`
	ChagualoInclTax float64 `json:"chagualo_con_iva"`
}

// Select returns the single variant for a location/tax-regime combination.
func (p PriceSet) Select(loc Location, taxIncluded bool) float64 {
	switch {
	case loc == LocationChagualo && taxIncluded:
		return p.ChagualoInclTax
	case loc == LocationChagualo:
		return p.ChagualoExclTax
	case taxIncluded:
		return p.CaldasInclTax
	default:
		return p.CaldasExclTax
	}
}

// Product is one immutable catalog row.
type Product struct {
	Reference   string   `json:"reference"`
	Description string   `json:"description"`
	Finish      string   `json:"finish"`
	Use         string   `json:"use"`
	Warranty    string   `json:"warranty"`
	Prices      PriceSet `json:"prices"`
}

// FormattedProduct is a search result: the product plus the price selected
// by the caller's location/tax choice, formatted for display, alongside all
// four raw variants for comparison.
type FormattedProduct struct {
	Reference    string   `json:"reference"`
	Description  string   `json:"description"`
	Finish       string   `json:"finish"`
	Use          string   `json:"use"`
	Warranty     string   `json:"warranty"`
	Location     Location `json:"location"`
	TaxIncluded  bool     `json:"tax_included"`
	Price        string   `json:"price"`
	PriceNumeric float64  `json:"price_numeric"`
	Prices       PriceSet `json:"prices"`
}

func formatProduct(p Product, loc Location, taxIncluded bool) FormattedProduct {
	price := p.Prices.Select(loc, taxIncluded)
	return FormattedProduct{
		Reference:    p.Reference,
		Description:  p.Description,
		Finish:       p.Finish,
		Use:          p.Use,
		Warranty:     p.Warranty,
		Location:     loc,
		TaxIncluded:  taxIncluded,
		Price:        money.FormatFloat(price),
		PriceNumeric: price,
		Prices:       p.Prices,
	}
}

// LoadResult summarizes a catalog load.
type LoadResult struct {
	OK      bool     `json:"ok"`
	Count   int      `json:"count"`
	Columns []string `json:"columns,omitempty"`
}

// PriceRange aggregates a price column for the stats view.
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// LocationStats groups the two tax variants of one zone.
type LocationStats struct {
	ExclTax PriceRange `json:"sin_iva"`
	InclTax PriceRange `json:"con_iva"`
}

// Stats describes the loaded catalog as a whole.
type Stats struct {
	TotalProducts int                        `json:"total_products"`
	Finishes      []string                   `json:"finishes"`
	Uses          []string                   `json:"uses"`
	Prices        map[Location]LocationStats `json:"prices"`
}
