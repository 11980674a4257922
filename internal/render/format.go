package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders a BRL amount as "R$ 1.234.567,89".
// Nil renders as empty string, never "0" or "NaN".
func FormatCurrency(v *float64) string {
	if v == nil {
		return ""
	}
	neg := *v < 0
	abs := *v
	if neg {
		abs = -abs
	}

	// two decimals, then group the integer part with dots
	s := strconv.FormatFloat(abs, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatArea renders square meters as "450m²" (whole values) or
// "123,5m²" (fractional values, one decimal, Brazilian comma).
func FormatArea(v *float64) string {
	if v == nil {
		return ""
	}
	if *v == float64(int64(*v)) {
		return strconv.FormatInt(int64(*v), 10) + "m²"
	}
	s := strconv.FormatFloat(*v, 'f', 1, 64)
	return strings.Replace(s, ".", ",", 1) + "m²"
}

// FormatInt renders an optional count; nil is empty, not "0".
func FormatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FormatDate renders a date in the Brazilian dd/mm/yyyy convention.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// PurposeLabel maps the stored purpose value to its display label.
func PurposeLabel(purpose string) string {
	switch purpose {
	case "sale":
		return "Venda"
	case "rental":
		return "Locação"
	case "sale_rental":
		return "Venda e Locação"
	}
	return purpose
}

// formatFloat mirrors a raw numeric field without locale formatting.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	return fmt.Sprintf("%t", v)
}
