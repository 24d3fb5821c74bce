package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "trailing fractional zero survives",
			raw:      "100.0",
			expected: "100.0",
		},
		{
			name:     "two-place scale survives",
			raw:      "1.50",
			expected: "1.50",
		},
		{
			name:     "plain fraction",
			raw:      "7.25",
			expected: "7.25",
		},
		{
			name:     "integer stays an integer",
			raw:      "100",
			expected: "100",
		},
		{
			name:     "zero",
			raw:      "0",
			expected: "0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			price := decimal.RequireFromString(test.raw)
			assert.Equal(t, test.expected, PriceString(price))
		})
	}
}
