package cli

import (
	"strings"
	"testing"
	"time"
)

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"7", "7"},
		{"123", "123"},
		{"1234", "1,234"},
		{"366319", "366,319"},
		{"22158734535770411074184", "22,158,734,535,770,411,074,184"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{1234 * time.Nanosecond, "1µs"},
		{1234567 * time.Nanosecond, "1.23ms"},
		{2345 * time.Millisecond, "2.345s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	fresh := statsLine(6, 2*time.Millisecond, false)
	for _, want := range []string{"6 digits", "2ms", iconFresh} {
		if !strings.Contains(fresh, want) {
			t.Errorf("statsLine fresh = %q, missing %q", fresh, want)
		}
	}

	cached := statsLine(1, time.Second, true)
	if !strings.Contains(cached, "1 digit") || strings.Contains(cached, "digits") {
		t.Errorf("statsLine should use the singular: %q", cached)
	}
	if strings.Contains(cached, "1s") || !strings.Contains(cached, iconCached) {
		t.Errorf("cached stats should omit timing: %q", cached)
	}
}
