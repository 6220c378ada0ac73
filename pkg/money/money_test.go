package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2580", "₦2,580.00"},
		{"2322.5", "₦2,322.50"},
		{"0.005", "₦0.01"},
		{"1234567.891", "₦1,234,567.89"},
		{"-12.3", "-₦12.30"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Format("₦", decimal.RequireFromString(c.in)), c.in)
	}
}
