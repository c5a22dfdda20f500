package recommend

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rupees renders an amount as ₹ with Indian digit grouping and paise,
// e.g. 123456.5 -> ₹1,23,456.50.
func Rupees(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	whole, paise, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(whole) + "." + paise
}

// groupIndian groups the last three digits, then pairs (lakh/crore style).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
