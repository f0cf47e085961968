package webhook

import (
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/gobwas/glob"
)

func TestValidatePayloadURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		errType error
	}{
		{
			name: "valid https URL",
			url:  "https://hooks.example.com/drydock",
		},
		{
			name: "valid http URL with port",
			url:  "http://hooks.example.com:8080/drydock",
		},
		{
			name: "valid URL with query",
			url:  "https://hooks.example.com/drydock?token=abc123",
		},
		{
			name:    "empty URL",
			url:     "",
			errType: ErrInvalidPayloadURL,
		},
		{
			name:    "overlong URL",
			url:     "https://hooks.example.com/" + strings.Repeat("a", MaxPayloadURLLength),
			errType: ErrPayloadURLTooLong,
		},
		{
			name:    "ftp scheme",
			url:     "ftp://hooks.example.com/drydock",
			errType: ErrInvalidScheme,
		},
		{
			name:    "file scheme",
			url:     "file:///etc/passwd",
			errType: ErrInvalidScheme,
		},
		{
			name:    "no scheme",
			url:     "hooks.example.com/drydock",
			errType: ErrInvalidScheme,
		},
		{
			name:    "missing hostname",
			url:     "https:///drydock",
			errType: ErrInvalidPayloadURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayloadURL(tt.url)
			if tt.errType == nil {
				if err != nil {
					t.Errorf("ValidatePayloadURL(%q) = %v, want nil", tt.url, err)
				}
				return
			}
			if !errors.Is(err, tt.errType) {
				t.Errorf("ValidatePayloadURL(%q) = %v, want %v", tt.url, err, tt.errType)
			}
		})
	}
}

func TestValidateSecret(t *testing.T) {
	if err := ValidateSecret(strings.Repeat("s", MaxSecretLength)); err != nil {
		t.Errorf("ValidateSecret() = %v, want nil at the limit", err)
	}
	if err := ValidateSecret(strings.Repeat("s", MaxSecretLength+1)); !errors.Is(err, ErrSecretTooLong) {
		t.Errorf("ValidateSecret() = %v, want ErrSecretTooLong", err)
	}
}

func TestIsPrivateOrInternal(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"127.0.0.1", true},
		{"::1", true},
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true}, // cloud metadata
		{"0.0.0.0", true},
		{"100.64.0.1", true},
		{"192.0.2.1", true},
		{"198.18.0.1", true},
		{"198.51.100.1", true},
		{"203.0.113.1", true},
		{"224.0.0.1", true},
		{"240.0.0.1", true},
		{"255.255.255.255", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"93.184.216.34", false},
		{"2606:4700:4700::1111", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("bad test IP %q", tt.ip)
			}
			if got := isPrivateOrInternal(ip); got != tt.private {
				t.Errorf("isPrivateOrInternal(%s) = %v, want %v", tt.ip, got, tt.private)
			}
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	for host, want := range map[string]bool{
		"localhost":             true,
		"LOCALHOST":             true,
		"localhost.localdomain": true,
		"svc.localhost":         true,
		"hooks.example.com":     false,
	} {
		if got := isLocalhost(host); got != want {
			t.Errorf("isLocalhost(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestHostAllowed(t *testing.T) {
	allowed := []glob.Glob{
		glob.MustCompile("*.example.com"),
		glob.MustCompile("hooks.internal"),
	}

	tests := []struct {
		host string
		want bool
	}{
		{"hooks.example.com", true},
		{"HOOKS.EXAMPLE.COM", true},
		{"hooks.internal", true},
		{"example.com", false},
		{"hooks.evil.org", false},
	}

	for _, tt := range tests {
		if got := hostAllowed(tt.host, allowed); got != tt.want {
			t.Errorf("hostAllowed(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}

	if !hostAllowed("anything.example.org", nil) {
		t.Error("hostAllowed() with an empty allowlist must allow every host")
	}
}
