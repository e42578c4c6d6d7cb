package safenet

import (
	"net"
	"testing"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"169.254.1.1", true},
		{"100.64.0.1", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"224.0.0.1", true},
		{"198.18.0.1", true},
		{"192.0.2.1", true},
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"93.184.216.34", false},
		{"172.32.0.1", false},
		{"2606:4700:4700::1111", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("failed to parse IP %q", tt.ip)
			}
			if got := IsPrivateIP(ip); got != tt.private {
				t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
			}
		})
	}
}

func TestDialControl(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"public address", "8.8.8.8:443", false},
		{"loopback", "127.0.0.1:80", true},
		{"private ten", "10.0.0.1:8080", true},
		{"link local", "169.254.169.254:80", true},
		{"ipv6 loopback", "[::1]:443", true},
		{"missing port", "8.8.8.8", true},
		{"hostname not resolved", "example.com:80", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DialControl("tcp", tt.address, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("DialControl(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
		})
	}
}

func TestMaybeDialControl(t *testing.T) {
	if MaybeDialControl(true) != nil {
		t.Error("expected nil control when private targets are allowed")
	}
	ctrl := MaybeDialControl(false)
	if ctrl == nil {
		t.Fatal("expected a control function when private targets are blocked")
	}
	if err := ctrl("tcp", "127.0.0.1:80", nil); err == nil {
		t.Error("expected loopback to be blocked")
	}
}
