package link

import (
	"errors"
	"testing"
)

func TestFromURLKeepsHostnameOnly(t *testing.T) {
	l, err := FromURL("https://en.wikipedia.org/wiki/GitHub?x=1#top")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Hostname != "en.wikipedia.org" {
		t.Fatalf("expected en.wikipedia.org, got %q", l.Hostname)
	}
}

func TestFromURLStripsPort(t *testing.T) {
	l, err := FromURL("http://localhost:9000/lambda-url")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Hostname != "localhost" {
		t.Fatalf("expected localhost, got %q", l.Hostname)
	}
}

func TestFromURLNormalizesHostname(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://GitHub.com/x", "github.com"},
		{"https://WWW.Example.ORG", "www.example.org"},
		{"https://münchen.de/", "xn--mnchen-3ya.de"},
		{"https://MÜNCHEN.de/", "xn--mnchen-3ya.de"},
		{"https://xn--mnchen-3ya.de/", "xn--mnchen-3ya.de"},
		{"http://[::1]:8080/", "::1"},
	}
	for _, tt := range tests {
		l, err := FromURL(tt.raw)
		if err != nil {
			t.Fatalf("FromURL(%q): unexpected error: %v", tt.raw, err)
		}
		if l.Hostname != tt.want {
			t.Fatalf("FromURL(%q): expected %q, got %q", tt.raw, tt.want, l.Hostname)
		}
	}
}

func TestFromURLNormalizedHostnamesPassValidation(t *testing.T) {
	for _, raw := range []string{"https://GitHub.com/x", "https://münchen.de/"} {
		l, err := FromURL(raw)
		if err != nil {
			t.Fatalf("FromURL(%q): unexpected error: %v", raw, err)
		}
		if err := ValidateHostname(l.Hostname); err != nil {
			t.Fatalf("expected %q to validate, got %v", l.Hostname, err)
		}
	}
}

func TestFromURLRejectsUnconvertibleHost(t *testing.T) {
	if _, err := FromURL("https://under_score.example/"); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestFromURLRejectsNonHTTP(t *testing.T) {
	for _, raw := range []string{
		"javascript:void(0)",
		"mailto:someone@example.com",
		"ftp://example.com/file",
		"/relative/path",
		"",
		"https://",
		"http://[::1",
	} {
		if _, err := FromURL(raw); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
		}
		if IsValidHTTPURL(raw) {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
}

func TestValidateHostname(t *testing.T) {
	valid := []string{
		"VaLiD-HoStNaMe",
		"50-name",
		"235235",
		"example.com",
		"VaLid.HoStNaMe",
		"www.place.au",
		"123.456",
	}
	for _, h := range valid {
		if err := ValidateHostname(h); err != nil {
			t.Fatalf("expected %q to be valid, got %v", h, err)
		}
	}

	invalid := []string{
		"-invalid-name",
		"also-invalid-",
		"asdf@fasd",
		"@asdfl",
		"asd f@",
		".invalid",
		"invalid.name.",
		"foo.label-is-way-to-longgggggggggggggggggggggggggggggggggggggggggggg.org",
		"invalid.-starting.char",
		"invalid.ending-.char",
		"empty..label",
		"",
	}
	for _, h := range invalid {
		if err := ValidateHostname(h); !errors.Is(err, ErrInvalidHostname) {
			t.Fatalf("expected %q to be invalid, got %v", h, err)
		}
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		host   string
		want   string
		wantOK bool
	}{
		{"en.wikipedia.org", "wikipedia.org", true},
		{"www.example.co.uk", "example.co.uk", true},
		{"github.com", "github.com", true},
		{"localhost", "", false},
	}
	for _, tt := range tests {
		got, ok := RegistrableDomain(tt.host)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("RegistrableDomain(%q) = %q, %v; want %q, %v", tt.host, got, ok, tt.want, tt.wantOK)
		}
	}
}
