package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Discount
		ok    bool
	}{
		{"plain percentage", "20%", Discount{Percentage, 20}, true},
		{"percentage with label", "20% OFF", Discount{Percentage, 20}, true},
		{"fractional percentage", "12.5% OFF", Discount{Percentage, 12.5}, true},
		{"currency amount", "LKR 5000", Discount{Amount, 5000}, true},
		{"currency amount with label", "LKR 5000 OFF", Discount{Amount, 5000}, true},
		{"bare number is an amount", "2500", Discount{Amount, 2500}, true},
		{"amount with decimals", "LKR 1500.50", Discount{Amount, 1500.50}, true},
		{"empty string", "", Discount{}, false},
		{"no numeric content", "FREE UPGRADE", Discount{}, false},
		{"percent sign without number", "% OFF", Discount{}, false},
		{"whitespace only", "   ", Discount{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDiscount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAmountOff(t *testing.T) {
	assert.Equal(t, 5000.0, Discount{Percentage, 20}.AmountOff(25000))
	assert.Equal(t, 5000.0, Discount{Amount, 5000}.AmountOff(25000))
	assert.Equal(t, 0.0, Discount{}.AmountOff(25000))
}
