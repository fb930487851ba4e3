package catalog

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet column headers, matched by exact (trimmed) name.
const (
	colReference   = "Referencia"
	colDescription = "DESCRIPCION"
	colFinish      = "ACABADO DE LA MADERA"
	colUse         = "USO"
	colWarranty    = "GARANTIA"

	colCaldasExcl   = "PRECIO CALDAS"
	colCaldasIncl   = "PRECIO CALDAS CON IVA"
	colChagualoExcl = "PRECIO CHAGUALO, GIRARDOTA, SAN CRISTOBAL"
	colChagualoIncl = "PRECIO CHAGUALO, GIRARDOTA, SAN CRISTOBAL IVA INCLUIDO"
)

var (
	// ErrEmpty indicates search before any successful load.
	ErrEmpty = errors.New("catalog: no products loaded")
	// ErrNotFound indicates a reference lookup miss.
	ErrNotFound = errors.New("catalog: product not found")
)

// LoadError reports a malformed or unreadable catalog source. The previous
// store contents stay authoritative when a load fails.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog load: %s: %v", e.Reason, e.Err)
	}
	return "catalog load: " + e.Reason
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is the in-memory catalog. Load replaces the whole table atomically;
// readers never observe a partial overwrite.
type Store struct {
	mu       sync.RWMutex
	products []Product
	loaded   bool
}

// NewStore returns an empty store. Search fails with ErrEmpty until the
// first successful Load.
func NewStore() *Store {
	return &Store{}
}

var nonPriceChars = regexp.MustCompile(`[^0-9.,]`)

// normalizePrice strips everything that is not a digit or separator, drops
// thousands separators and parses the remainder. Unparseable or missing
// values normalize to 0, matching the source spreadsheet's habits.
func normalizePrice(raw string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Load reads an XLSX price list and replaces the store contents. Rows
// missing a reference or description are dropped. On error the previous
// catalog (if any) is retained.
func (s *Store) Load(r io.Reader) (LoadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return LoadResult{}, &LoadError{Reason: "open workbook", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return LoadResult{}, &LoadError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return LoadResult{}, &LoadError{Reason: "read rows", Err: err}
	}
	if len(rows) == 0 {
		return LoadResult{}, &LoadError{Reason: "workbook is empty"}
	}

	header := make(map[string]int, len(rows[0]))
	columns := make([]string, 0, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		header[name] = i
		columns = append(columns, name)
	}
	if _, ok := header[colReference]; !ok {
		return LoadResult{}, &LoadError{Reason: fmt.Sprintf("missing required column %q", colReference)}
	}
	if _, ok := header[colDescription]; !ok {
		return LoadResult{}, &LoadError{Reason: fmt.Sprintf("missing required column %q", colDescription)}
	}

	cell := func(row []string, column string) string {
		idx, ok := header[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	products := make([]Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		ref := cell(row, colReference)
		desc := cell(row, colDescription)
		if ref == "" || desc == "" {
			continue
		}
		products = append(products, Product{
			Reference:   ref,
			Description: desc,
			Finish:      cell(row, colFinish),
			Use:         cell(row, colUse),
			Warranty:    cell(row, colWarranty),
			Prices: PriceSet{
				CaldasExclTax:   normalizePrice(cell(row, colCaldasExcl)),
				CaldasInclTax:   normalizePrice(cell(row, colCaldasIncl)),
				ChagualoExclTax: normalizePrice(cell(row, colChagualoExcl)),
				ChagualoInclTax: normalizePrice(cell(row, colChagualoIncl)),
			},
		})
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	return LoadResult{OK: true, Count: len(products), Columns: columns}, nil
}

// Len returns the number of loaded products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Loaded reports whether a catalog has been loaded successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Search returns up to limit products whose description contains term
// (case-insensitive), in catalog row order. An empty result is a normal
// outcome, not an error; searching before any load returns ErrEmpty.
func (s *Store) Search(term string, loc Location, taxIncluded bool, limit int) ([]FormattedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, ErrEmpty
	}
	if limit <= 0 {
		limit = 10
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	results := make([]FormattedProduct, 0, limit)
	for _, p := range s.products {
		if !strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		results = append(results, formatProduct(p, loc, taxIncluded))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// GetByReference finds a product by its exact reference.
func (s *Store) GetByReference(ref string, loc Location, taxIncluded bool) (FormattedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return FormattedProduct{}, ErrEmpty
	}
	for _, p := range s.products {
		if p.Reference == ref {
			return formatProduct(p, loc, taxIncluded), nil
		}
	}
	return FormattedProduct{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Stats summarizes the loaded catalog: row count, distinct finishes and
// uses, and the min/max/average of every price column per zone.
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return Stats{}, ErrEmpty
	}

	stats := Stats{
		TotalProducts: len(s.products),
		Finishes:      distinct(s.products, func(p Product) string { return p.Finish }),
		Uses:          distinct(s.products, func(p Product) string { return p.Use }),
		Prices:        make(map[Location]LocationStats, 2),
	}
	for _, loc := range []Location{LocationCaldas, LocationChagualo} {
		stats.Prices[loc] = LocationStats{
			ExclTax: priceRange(s.products, loc, false),
			InclTax: priceRange(s.products, loc, true),
		}
	}
	return stats, nil
}

func distinct(products []Product, field func(Product) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func priceRange(products []Product, loc Location, taxIncluded bool) PriceRange {
	var r PriceRange
	var sum float64
	var n int
	for _, p := range products {
		v := p.Prices.Select(loc, taxIncluded)
		if v == 0 {
			continue
		}
		if n == 0 || v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
		sum += v
		n++
	}
	if n > 0 {
		r.Average = sum / float64(n)
	}
	return r
}
