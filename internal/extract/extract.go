// Package extract derives a structured line item from free-form Spanish
// text produced by the conversational agent.
//
// Extraction is a best-effort union over an ordered list of independent
// surface patterns, not a grammar: each pattern is a (regexp, bounds) pair
// that is testable on its own, and a single aggregation step collects the
// surviving candidates. The tie-break between competing numbers lives in
// the resolver, isolated from the pattern details.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Config carries the tunable extraction constants. The magnitude bounds and
// the reconciliation tolerance are empirical; they are configuration, not
// derived values.
type Config struct {
	MinPrice         int64
	MaxPrice         int64
	MinQuantity      int64
	MaxQuantity      int64
	TolerancePercent int64
	DefaultWeight    int64
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		MinPrice:         1_000,
		MaxPrice:         50_000_000,
		MinQuantity:      1,
		MaxQuantity:      1_000,
		TolerancePercent: 10,
		DefaultWeight:    0,
	}
}

// Extractor runs the pattern cascades. It is stateless and safe for
// concurrent use.
type Extractor struct {
	cfg Config
}

// New returns an extractor with the given constants.
func New(cfg Config) *Extractor {
	if cfg.MaxPrice == 0 {
		cfg = DefaultConfig()
	}
	return &Extractor{cfg: cfg}
}

// Candidate is one numeric token surviving a pattern and its bounds check.
type Candidate struct {
	Value   int64
	Pattern string
	Match   string
}

// pattern pairs a surface regexp with the name reported on its candidates.
// group selects the submatch carrying the number (0 = whole match).
type pattern struct {
	tag   string
	re    *regexp.Regexp
	group int
}

// amount matches an integer with optional dot/comma thousands grouping.
const amount = `(\d{1,3}(?:[.,]\d{3})+|\d+)`

// Price patterns, in priority order. All run; the union is deduplicated.
var pricePatterns = []pattern{
	{"currency-suffix", regexp.MustCompile(amount + `\s*(?:cop|pesos?)\b`), 1},
	{"currency-prefix", regexp.MustCompile(`\$\s*` + amount), 1},
	{"keyword", regexp.MustCompile(`\b(?:precio|cuesta|total|subtotal|vale|por)\b[^0-9]{0,20}?` + amount), 1},
	{"bare-number", regexp.MustCompile(`\b\d{5,7}\b`), 0},
}

// Quantity patterns. "12x300"-style dimension codes must not match the
// multiplier forms, so the x patterns require surrounding whitespace.
var quantityPatterns = []pattern{
	{"count-noun", regexp.MustCompile(`\b(\d+)\s*(?:unidades?|alfardas?|postes?|estacones?|varas?|tablas?|listones?|tablillas?|piezas?|mesas?|sillas?|metros?)\b`), 1},
	{"noun-count", regexp.MustCompile(`\b(?:unidades?|alfardas?|postes?|estacones?|varas?|tablas?|listones?|tablillas?|piezas?)\s*:\s*(\d+)\b`), 1},
	{"cantidad", regexp.MustCompile(`\bcantidad\b[^0-9]{0,10}?(\d+)`), 1},
	{"para", regexp.MustCompile(`\bpara\s+(\d+)\b`), 1},
	{"times-suffix", regexp.MustCompile(`\b(\d+)\s*x(?:\s|$)`), 1},
	{"times-prefix", regexp.MustCompile(`(?:^|\s)x\s*(\d+)\b`), 1},
}

// parseAmount strips thousands separators and parses the remainder.
func parseAmount(raw string) (int64, bool) {
	cleaned := strings.NewReplacer(".", "", ",", "").Replace(raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func scan(text string, patterns []pattern, min, max int64) []Candidate {
	lower := strings.ToLower(text)
	seen := make(map[int64]struct{})
	var out []Candidate
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			v, ok := parseAmount(m[p.group])
			if !ok || v < min || v > max {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, Candidate{Value: v, Pattern: p.tag, Match: m[p.group]})
		}
	}
	return out
}

// PriceCandidates returns the plausible monetary amounts found in text,
// deduplicated and sorted ascending. Pure and deterministic.
func (e *Extractor) PriceCandidates(text string) []Candidate {
	out := scan(text, pricePatterns, e.cfg.MinPrice, e.cfg.MaxPrice)
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Prices returns just the candidate values, ascending.
func (e *Extractor) Prices(text string) []int64 {
	return values(e.PriceCandidates(text))
}

// QuantityCandidates returns plausible item counts in pattern-priority
// order: the first candidate is the one the resolver uses.
func (e *Extractor) QuantityCandidates(text string) []Candidate {
	return scan(text, quantityPatterns, e.cfg.MinQuantity, e.cfg.MaxQuantity)
}

// Quantities returns just the candidate values, in discovery order.
func (e *Extractor) Quantities(text string) []int64 {
	return values(e.QuantityCandidates(text))
}

func values(cands []Candidate) []int64 {
	out := make([]int64, len(cands))
	for i, c := range cands {
		out[i] = c.Value
	}
	return out
}
