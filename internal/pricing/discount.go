package pricing

import (
	"strconv"
	"strings"
)

// DiscountType distinguishes percentage discounts from absolute ones.
type DiscountType string

const (
	Percentage DiscountType = "percentage"
	Amount     DiscountType = "amount"
)

// Discount is the structured form of a promotional discount. Offers
// store it in this form; the free-text micro-format ("20% OFF",
// "LKR 5000 OFF") is parsed once at the admin input boundary.
type Discount struct {
	Type  DiscountType
	Value float64
}

// AmountOff returns the currency amount this discount removes from the
// given subtotal.
func (d Discount) AmountOff(subtotal float64) float64 {
	switch d.Type {
	case Percentage:
		return subtotal * d.Value / 100
	case Amount:
		return d.Value
	default:
		return 0
	}
}

// ParseDiscount interprets a free-text discount string. A string
// containing '%' is a percentage, read from its leading numeric portion;
// anything else is an absolute amount with currency symbols and labels
// stripped. ok is false when no numeric value can be extracted, which
// callers treat as zero discount.
func ParseDiscount(s string) (Discount, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Discount{}, false
	}

	if strings.Contains(s, "%") {
		v, ok := leadingNumber(s)
		if !ok {
			return Discount{}, false
		}
		return Discount{Type: Percentage, Value: v}, true
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return Discount{}, false
	}
	return Discount{Type: Amount, Value: v}, true
}

// leadingNumber reads the first numeric token in s, skipping anything
// before it.
func leadingNumber(s string) (float64, bool) {
	start := -1
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			v, err := strconv.ParseFloat(s[start:i], 64)
			return v, err == nil
		}
	}
	if start == -1 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[start:], 64)
	return v, err == nil
}
