package reporting

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// FormatRupiah renders an amount as "Rp. 1,234,567". Fractions are kept to
// at most two digits and dropped when zero.
func FormatRupiah(d decimal.Decimal) string {
	return "Rp. " + groupThousands(d)
}

// FormatCompact shortens large amounts for chart axes: 1500 becomes "1.5K"
// and 2000000 becomes "2.0M". Smaller amounts are printed as is.
func FormatCompact(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(1) + "M"
	case d.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "K"
	default:
		return d.String()
	}
}

func groupThousands(d decimal.Decimal) string {
	s := d.Round(2).String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}
