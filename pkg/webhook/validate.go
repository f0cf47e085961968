package webhook

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

const (
	// MaxPayloadURLLength bounds stored payload URLs.
	MaxPayloadURLLength = 2000
	// MaxSecretLength bounds stored webhook secrets.
	MaxSecretLength = 250
)

var (
	// ErrInvalidPayloadURL is returned when the payload URL is empty or malformed.
	ErrInvalidPayloadURL = errors.New("invalid webhook payload URL")
	// ErrPayloadURLTooLong is returned when the payload URL exceeds MaxPayloadURLLength.
	ErrPayloadURLTooLong = errors.New("webhook payload URL too long")
	// ErrSecretTooLong is returned when the secret exceeds MaxSecretLength.
	ErrSecretTooLong = errors.New("webhook secret too long")
	// ErrInvalidScheme is returned when the payload URL scheme is not http or https.
	ErrInvalidScheme = errors.New("webhook URL must use http or https scheme")
	// ErrPrivateAddress is returned when a delivery would reach a private or internal address.
	ErrPrivateAddress = errors.New("webhook URL cannot target private or internal addresses")
	// ErrHostNotAllowed is returned when the destination host matches no allowlist pattern.
	ErrHostNotAllowed = errors.New("webhook URL host does not match the allowed hosts")
)

// ValidatePayloadURL checks a payload URL at registration time. It
// checks shape only; destination addresses are validated again when
// dialing, because DNS can change between registration and delivery.
func ValidatePayloadURL(rawURL string) error {
	if rawURL == "" {
		return ErrInvalidPayloadURL
	}

	if len(rawURL) > MaxPayloadURLLength {
		return ErrPayloadURLTooLong
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayloadURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidScheme
	}

	if u.Hostname() == "" {
		return fmt.Errorf("%w: missing hostname", ErrInvalidPayloadURL)
	}

	return nil
}

// ValidateSecret checks a webhook secret at registration time.
func ValidateSecret(secret string) error {
	if len(secret) > MaxSecretLength {
		return ErrSecretTooLong
	}

	return nil
}

// hostAllowed reports whether host matches any allowlist pattern. An
// empty allowlist allows every host.
func hostAllowed(host string, allowed []glob.Glob) bool {
	if len(allowed) == 0 {
		return true
	}

	host = strings.ToLower(host)
	for _, g := range allowed {
		if g.Match(host) {
			return true
		}
	}

	return false
}

// isLocalhost checks if the hostname is localhost or similar.
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	return hostname == "localhost" ||
		hostname == "localhost.localdomain" ||
		strings.HasSuffix(hostname, ".localhost")
}

// reservedNets are IPv4 ranges that never host webhook endpoints and
// are not covered by the net.IP classification helpers.
var reservedNets = mustParseCIDRs(
	"0.0.0.0/8",       // current network
	"100.64.0.0/10",   // shared address space
	"192.0.0.0/24",    // IETF protocol assignments
	"192.0.2.0/24",    // TEST-NET-1
	"198.18.0.0/15",   // benchmarking
	"198.51.100.0/24", // TEST-NET-2
	"203.0.113.0/24",  // TEST-NET-3
	"240.0.0.0/4",     // reserved, includes broadcast
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, len(cidrs))
	for i, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets[i] = n
	}
	return nets
}

// isPrivateOrInternal checks if an IP address is private, internal, or
// reserved. Link-local ranges cover the cloud metadata services.
func isPrivateOrInternal(ip net.IP) bool {
	if ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() {
		return true
	}

	for _, n := range reservedNets {
		if n.Contains(ip) {
			return true
		}
	}

	return false
}

// validateAddr guards the delivery dialer against private and internal
// destinations. It runs on resolved addresses, so a DNS record that
// changed after registration cannot redirect a delivery inside.
func validateAddr(ip net.IP) error {
	if isPrivateOrInternal(ip) {
		return ErrPrivateAddress
	}

	return nil
}
