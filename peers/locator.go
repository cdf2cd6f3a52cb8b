// Package peers tracks the other nodes this node broadcasts to.
package peers

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrInvalidAddress is returned when a peer locator is neither a host:port
// pair nor a URL with an extractable network location.
var ErrInvalidAddress = errors.New("peers: invalid peer address")

// Locator is a validated peer address. The zero value is not usable; build
// one with ParseLocator.
type Locator struct {
	hostPort string
}

// ParseLocator accepts a bare "host:port" or a full URL and extracts the
// network location. Everything else fails with ErrInvalidAddress.
func ParseLocator(raw string) (Locator, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Locator{}, fmt.Errorf("%w: empty string", ErrInvalidAddress)
	}

	// Bare "host:port" first: url.Parse rejects it outright when the host
	// part starts with a digit. URLs always carry a slash, so anything with
	// one goes through the URL path below.
	if !strings.Contains(trimmed, "/") {
		if host, port, err := net.SplitHostPort(trimmed); err == nil && host != "" && port != "" {
			return Locator{hostPort: net.JoinHostPort(host, port)}, nil
		}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}
	if u.Host != "" {
		return Locator{hostPort: u.Host}, nil
	}
	if u.Path != "" {
		return Locator{hostPort: u.Path}, nil
	}
	return Locator{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
}

// String returns the locator's host:port form.
func (l Locator) String() string {
	return l.hostPort
}

// URL returns the base HTTP URL for reaching the peer.
func (l Locator) URL() string {
	return "http://" + l.hostPort
}
