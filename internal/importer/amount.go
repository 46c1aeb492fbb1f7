package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount accepts both "1,234.56" and "1.234,56". Whichever of ',' and '.'
// appears last is taken as the decimal separator.
func parseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(s, " ", "")
	clean = strings.TrimSuffix(clean, "€")

	if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}
