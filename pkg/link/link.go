package link

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/idna"
)

var (
	ErrInvalidURL      = errors.New("not a valid http(s) url")
	ErrInvalidHostname = errors.New("Hostname is invalid")
)

// Link is the unit of scoring and voting identity. Path and query of the
// source URL are discarded.
type Link struct {
	Hostname string `json:"hostname"`
}

// FromURL parses a full http(s) URL and keeps only its hostname, lowercased
// and in its ASCII (punycode) form.
func FromURL(rawURL string) (Link, error) {
	u, err := parseHTTPURL(rawURL)
	if err != nil {
		return Link{}, err
	}
	host, err := normalizeHostname(u.Hostname())
	if err != nil {
		return Link{}, err
	}
	return Link{Hostname: host}, nil
}

func normalizeHostname(host string) (string, error) {
	host = strings.ToLower(host)
	// IPv6 literal
	if strings.Contains(host, ":") {
		return host, nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: host %q: %v", ErrInvalidURL, host, err)
	}
	return ascii, nil
}

// IsValidHTTPURL reports whether rawURL is an absolute http or https URL with a host.
func IsValidHTTPURL(rawURL string) bool {
	_, err := parseHTTPURL(rawURL)
	return err == nil
}

func parseHTTPURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// ValidateHostname checks a hostname against RFC 1123: alphanumerics, '-'
// and '.', at most 253 characters, non-empty labels of at most 63
// characters that neither start nor end with '-'.
func ValidateHostname(hostname string) error {
	if hostname == "" || len(hostname) > 253 {
		return ErrInvalidHostname
	}
	for i := 0; i < len(hostname); i++ {
		if !isHostnameByte(hostname[i]) {
			return ErrInvalidHostname
		}
	}
	for _, label := range strings.Split(hostname, ".") {
		if label == "" || len(label) > 63 || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return ErrInvalidHostname
		}
	}
	return nil
}

func isHostnameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '-' || b == '.'
}

// RegistrableDomain returns the public-suffix based root of a hostname.
// e.g., "en.wikipedia.org" -> "wikipedia.org", true
func RegistrableDomain(hostname string) (string, bool) {
	host := strings.TrimSuffix(strings.ToLower(hostname), ".")
	if !strings.Contains(host, ".") {
		return "", false
	}
	domain, err := publicsuffix.Domain(host)
	if err != nil {
		return "", false
	}
	return domain, true
}
