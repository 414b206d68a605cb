package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceWithoutTax(t *testing.T) {
	cases := []struct {
		price string
		want  string
	}{
		{"1000", "826.45"},
		{"1200", "991.74"},
		{"121", "100"},
		{"0", "0"},
		{"9.99", "8.26"},
	}

	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			got := PriceWithoutTax(decimal.RequireFromString(tc.price))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"PriceWithoutTax(%s) = %s, want %s", tc.price, got, tc.want)
		})
	}
}
