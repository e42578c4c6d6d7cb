package validate

import (
	"strings"
	"testing"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		interval int
		errSub   string
	}{
		{"valid http", "http://example.com", 5, ""},
		{"valid https with path", "https://example.com/healthz", 1, ""},
		{"valid with port", "https://example.com:8443/status", 15, ""},
		{"valid ipv4 host", "http://93.184.216.34/", 60, ""},
		{"valid idn host", "https://bücher.example", 5, ""},
		{"empty url", "", 5, "url is required"},
		{"whitespace url", "   ", 5, "url is required"},
		{"missing scheme", "example.com", 5, "scheme must be"},
		{"ftp scheme", "ftp://example.com", 5, "scheme must be"},
		{"no host", "http://", 5, "host is required"},
		{"bad hostname", "http://exa mple.com", 5, "invalid"},
		{"interval not offered", "https://example.com", 7, "interval must be one of"},
		{"zero interval", "https://example.com", 0, "interval must be one of"},
		{"negative interval", "https://example.com", -5, "interval must be one of"},
		{"url too long", "https://example.com/" + strings.Repeat("a", maxURLLength), 5, "at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Target(tt.url, tt.interval)
			if tt.errSub == "" {
				if err != nil {
					t.Fatalf("Target(%q, %d) unexpected error: %v", tt.url, tt.interval, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Target(%q, %d) expected error containing %q, got nil", tt.url, tt.interval, tt.errSub)
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.errSub)
			}
		})
	}
}

func TestIntervalAllowed(t *testing.T) {
	for _, mins := range AllowedIntervals {
		if !IntervalAllowed(mins) {
			t.Errorf("IntervalAllowed(%d) = false, want true", mins)
		}
	}
	for _, mins := range []int{0, -1, 2, 7, 30, 120} {
		if IntervalAllowed(mins) {
			t.Errorf("IntervalAllowed(%d) = true, want false", mins)
		}
	}
}
