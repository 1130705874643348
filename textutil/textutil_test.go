package textutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPlace(t *testing.T) {
	tests := []struct {
		place    int
		expected string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{21, "21st"},
		{22, "22nd"},
		{101, "101st"},
		{111, "111th"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatPlace(tt.place); got != tt.expected {
				t.Errorf("FormatPlace(%d) = %q, want %q", tt.place, got, tt.expected)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Whole dollars", "500", "$500.00"},
		{"Cents", "12.5", "$12.50"},
		{"Zero", "0", "$0.00"},
		{"Thousands", "1234.5", "$1,234.50"},
		{"Exactly a thousand", "1000", "$1,000.00"},
		{"Millions", "1234567.89", "$1,234,567.89"},
		{"Six digits", "100000", "$100,000.00"},
		{"Negative", "-42.1", "-$42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.input))
			if got != tt.expected {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatBounty(t *testing.T) {
	if got := FormatBounty(decimal.NullDecimal{}); got != "-" {
		t.Errorf("FormatBounty(absent) = %q, want %q", got, "-")
	}
	if got := FormatBounty(decimal.NewNullDecimal(decimal.NewFromInt(150))); got != "$150.00" {
		t.Errorf("FormatBounty(150) = %q, want %q", got, "$150.00")
	}
}

func TestJoinInts(t *testing.T) {
	if got := JoinInts([]int{3, 1, 2}, ", "); got != "3, 1, 2" {
		t.Errorf("JoinInts = %q", got)
	}
	if got := JoinInts(nil, ","); got != "" {
		t.Errorf("JoinInts(nil) = %q", got)
	}
}
