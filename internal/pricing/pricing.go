// Package pricing computes booking totals from the package base price,
// party composition and an optional promotional discount. It is pure:
// no I/O, no clock, identical inputs always produce identical output.
package pricing

// Children travel at half the adult rate. This is platform policy, not
// configurable per package.
const childRate = 0.5

// Subtotal returns the pre-discount amount for a party. Callers validate
// adults >= 1 and children >= 0 before reaching the engine.
func Subtotal(unitPrice float64, adults, children int) float64 {
	return unitPrice*float64(adults) + unitPrice*childRate*float64(children)
}

// ComputeTotal applies the optional discount to the party subtotal.
// The result is floored at zero, never negative.
func ComputeTotal(unitPrice float64, adults, children int, d *Discount) float64 {
	total := Subtotal(unitPrice, adults, children)
	if d != nil {
		total -= d.AmountOff(total)
	}
	if total < 0 {
		return 0
	}
	return total
}
