package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		adults    int
		children  int
		want      float64
	}{
		{"single adult", 10000, 1, 0, 10000},
		{"two adults one child", 10000, 2, 1, 25000},
		{"children at half rate", 8000, 1, 2, 16000},
		{"zero price", 0, 3, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtotal(tt.unitPrice, tt.adults, tt.children))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	t.Run("no discount", func(t *testing.T) {
		assert.Equal(t, 25000.0, ComputeTotal(10000, 2, 1, nil))
	})

	t.Run("percentage discount", func(t *testing.T) {
		d := &Discount{Type: Percentage, Value: 20}
		assert.Equal(t, 20000.0, ComputeTotal(10000, 2, 1, d))
	})

	t.Run("absolute discount", func(t *testing.T) {
		d := &Discount{Type: Amount, Value: 5000}
		assert.Equal(t, 20000.0, ComputeTotal(10000, 2, 1, d))
	})

	t.Run("discount larger than subtotal floors at zero", func(t *testing.T) {
		d := &Discount{Type: Amount, Value: 99999}
		assert.Equal(t, 0.0, ComputeTotal(1000, 1, 0, d))
	})

	t.Run("hundred percent off", func(t *testing.T) {
		d := &Discount{Type: Percentage, Value: 100}
		assert.Equal(t, 0.0, ComputeTotal(10000, 2, 0, d))
	})

	t.Run("unknown discount type is a no-op", func(t *testing.T) {
		d := &Discount{Type: "mystery", Value: 50}
		assert.Equal(t, 25000.0, ComputeTotal(10000, 2, 1, d))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		d := &Discount{Type: Percentage, Value: 15}
		first := ComputeTotal(12345.67, 3, 2, d)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ComputeTotal(12345.67, 3, 2, d))
		}
	})

	t.Run("result never negative", func(t *testing.T) {
		discounts := []*Discount{
			nil,
			{Type: Percentage, Value: 150},
			{Type: Amount, Value: 1e9},
		}
		for _, d := range discounts {
			assert.GreaterOrEqual(t, ComputeTotal(5000, 2, 3, d), 0.0)
		}
	})
}
