package extract

import "strings"

// productRule maps a keyword set to a canonical reference/description. All
// keywords must appear in the lower-cased text. The table is ordered: more
// specific entries (family plus dimension code) come before generic family
// entries, so adding a product is adding a row, not editing control flow.
type productRule struct {
	keywords    []string
	reference   string
	description string
}

var productRules = []productRule{
	{[]string{"alfarda", "12x300"}, "ALF-12X300", "Alfarda tratada 12x300"},
	{[]string{"alfarda", "10x300"}, "ALF-10X300", "Alfarda tratada 10x300"},
	{[]string{"alfarda", "8x300"}, "ALF-8X300", "Alfarda tratada 8x300"},
	{[]string{"poste", "inmunizado"}, "POS-INM", "Poste inmunizado"},
	{[]string{"alfarda"}, "ALF-STD", "Alfarda tratada"},
	{[]string{"poste"}, "POS-STD", "Poste de madera"},
	{[]string{"estac"}, "EST-STD", "Estacón inmunizado"},
	{[]string{"vara"}, "VAR-STD", "Vara de clavo"},
	{[]string{"tablilla"}, "TBL-STD", "Tablilla de madera"},
	{[]string{"tabla"}, "TAB-STD", "Tabla burra"},
	{[]string{"listón"}, "LIS-STD", "Listón de madera"},
	{[]string{"liston"}, "LIS-STD", "Listón de madera"},
	{[]string{"cerca"}, "CER-STD", "Cerca de madera inmunizada"},
	{[]string{"mesa"}, "MES-STD", "Mesa de madera"},
	{[]string{"silla"}, "SIL-STD", "Silla de madera"},
}

const (
	genericReference   = "GEN-001"
	genericDescription = "Producto de madera inmunizada"
)

// IdentifyProduct classifies text against the product-family table and
// returns the canonical reference and description. Unrecognized text gets
// the generic placeholder.
func IdentifyProduct(text string) (reference, description string) {
	lower := strings.ToLower(text)
	for _, rule := range productRules {
		matched := true
		for _, kw := range rule.keywords {
			if !strings.Contains(lower, kw) {
				matched = false
				break
			}
		}
		if matched {
			return rule.reference, rule.description
		}
	}
	return genericReference, genericDescription
}
