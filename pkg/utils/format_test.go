package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(1500); got != "+1,500.00" {
		t.Errorf("FormatPnL(1500) = %q", got)
	}
	if got := FormatPnL(-250); got != "-250.00" {
		t.Errorf("FormatPnL(-250) = %q", got)
	}
}

func TestFormatR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "+1.50R"},
		{-0.75, "-0.75R"},
		{0, "0.00R"},
	}
	for _, tt := range tests {
		if got := FormatR(tt.in); got != tt.want {
			t.Errorf("FormatR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{500, "500.00"},
		{1500, "1.50K"},
		{2500000, "2.50M"},
		{-1500, "-1.50K"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
