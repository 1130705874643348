package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50", "50"},
		{"50.005", "50"},
		{"33.339", "33.33"},
		{"0.009", "0"},
		{"16.6666666666666667", "16.66"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Quantize(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "Quantize(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestHalfIsExact(t *testing.T) {
	b := decimal.RequireFromString("100.01")
	h := Half(b)
	assert.True(t, h.Equal(decimal.RequireFromString("50.005")))
	assert.True(t, h.Add(h).Equal(b))
}

func TestParse(t *testing.T) {
	d, err := Parse("12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = Parse("-1")
	assert.Error(t, err)

	_, err = Parse("twelve")
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	got := Sum(decimal.NewFromInt(1), decimal.RequireFromString("0.25"), decimal.RequireFromString("0.75"))
	assert.True(t, got.Equal(decimal.NewFromInt(2)))
	assert.True(t, Sum().IsZero())
}
