package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is one of the fixed meal-type slots a supplier can price.
type Category string

const (
	CategoryCafe           Category = "cafe"
	CategoryAlmocoMarmitex Category = "almoco_marmitex"
	CategoryAlmocoLocal    Category = "almoco_local"
	CategoryJantaMarmitex  Category = "janta_marmitex"
	CategoryJantaLocal     Category = "janta_local"
	CategoryGelo           Category = "gelo"
)

// Categories lists every slot in persisted column order.
var Categories = []Category{
	CategoryCafe,
	CategoryAlmocoMarmitex,
	CategoryAlmocoLocal,
	CategoryJantaMarmitex,
	CategoryJantaLocal,
	CategoryGelo,
}

// categoryByLabel maps normalized meal-type labels to their category. The
// source rows carry free-text labels such as "CAFÉ" or "Almoço Marmitex";
// anything not in this table is not a recognized category.
var categoryByLabel = map[string]Category{
	"cafe":            CategoryCafe,
	"almoco marmitex": CategoryAlmocoMarmitex,
	"almoco local":    CategoryAlmocoLocal,
	"janta marmitex":  CategoryJantaMarmitex,
	"janta local":     CategoryJantaLocal,
	"gelo":            CategoryGelo,
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel folds a raw meal-type label into its canonical lookup form:
// trimmed, lowercased, diacritics removed, inner whitespace collapsed.
func NormalizeLabel(label string) string {
	folded, _, err := transform.String(stripDiacritics, label)
	if err != nil {
		folded = label
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// CategoryForLabel resolves a raw label to a category. The second return is
// false for labels outside the recognized set.
func CategoryForLabel(label string) (Category, bool) {
	c, ok := categoryByLabel[NormalizeLabel(label)]
	return c, ok
}
