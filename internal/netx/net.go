// Package netx holds small networking helpers.
package netx

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeBaseURL turns a server address into a base URL. A bare host:port
// gets an http:// scheme; a trailing slash is removed.
func NormalizeBaseURL(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("empty server address")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid server address %q: %w", addr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server address %q: missing host", addr)
	}

	return strings.TrimRight(u.String(), "/"), nil
}
