package cli

import (
	"testing"
	"time"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long setup name", 10, "a very lo…"},
		{"héllo wörld", 7, "héllo …"},
		{"x", 1, "x"},
		{"xy", 1, "x"},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(parsed) != "2026-03-15" {
		t.Errorf("round trip = %q", FormatDate(parsed))
	}
	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 1, 5, 13, 45, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2026-01-05" {
		t.Errorf("FormatDate = %q", got)
	}
}
