package engines

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func mustPage(t *testing.T, pageURL, body string) *Page {
	t.Helper()
	p, err := NewPage(pageURL, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	return p
}

func hostnames(links []*SearchEngineLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Link().Hostname)
	}
	return out
}

// fakeResolver maps referral URLs to destinations; unknown URLs fail.
type fakeResolver struct {
	mu    sync.Mutex
	dest  map[string]string
	calls []string
}

func (f *fakeResolver) Resolve(_ context.Context, referralURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, referralURL)
	d, ok := f.dest[referralURL]
	if !ok {
		return "", fmt.Errorf("no destination for %s", referralURL)
	}
	return d, nil
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		hostname string
		want     Engine
		wantOK   bool
	}{
		{"www.google.com", Google, true},
		{"www.google.it", Google, true},
		{"www.google.com.au", Google, true},
		{"www.bing.com", Bing, true},
		{"duckduckgo.com", DuckDuckGo, true},
		{"html.duckduckgo.com", DuckDuckGo, true},
		{"google.com", 0, false},
		{"bing.com", 0, false},
		{"example.org", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Identify(tt.hostname)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Fatalf("Identify(%q) = %v, %v; want %v, %v", tt.hostname, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIdentifyIsPure(t *testing.T) {
	for i := 0; i < 5; i++ {
		e, ok := Identify("www.bing.co.uk")
		if !ok || e != Bing {
			t.Fatalf("expected Bing on iteration %d, got %v, %v", i, e, ok)
		}
	}
}

func TestEngineString(t *testing.T) {
	if Google.String() != "google" || Bing.String() != "bing" || DuckDuckGo.String() != "duckduckgo" {
		t.Fatalf("unexpected engine names")
	}
	if Engine(42).String() != "engine(42)" {
		t.Fatalf("unexpected name for unknown engine: %s", Engine(42))
	}
}

func TestExtractWithoutDocumentFails(t *testing.T) {
	x := &Extractor{}
	if _, err := x.Extract(context.Background(), Google, nil); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if _, err := x.Extract(context.Background(), Google, &Page{}); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument for empty page, got %v", err)
	}
}

func TestExtractUnknownEngine(t *testing.T) {
	p := mustPage(t, "https://www.google.com/search?q=x", "<html></html>")
	x := &Extractor{}
	if _, err := x.Extract(context.Background(), Engine(42), p); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestSettleKeepsOrderAndPartitions(t *testing.T) {
	oks, errs := Settle(context.Background(), 2, 5, func(_ context.Context, i int) (int, error) {
		if i == 2 {
			return 0, errors.New("boom")
		}
		return i * 10, nil
	})

	expect := []int{0, 10, 30, 40}
	if !reflect.DeepEqual(oks, expect) {
		t.Fatalf("unexpected results.\nwant: %#v\ngot:  %#v", expect, oks)
	}
	if len(errs) != 1 || errs[0].Error() != "boom" {
		t.Fatalf("expected one boom error, got %v", errs)
	}
}

func TestSettleEmpty(t *testing.T) {
	oks, errs := Settle(context.Background(), 1, 0, func(context.Context, int) (string, error) {
		t.Fatalf("fn must not be called")
		return "", nil
	})
	if oks != nil || errs != nil {
		t.Fatalf("expected nothing, got %v %v", oks, errs)
	}
}

func TestSettleRespectsLimit(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		Settle(context.Background(), 2, 6, func(context.Context, int) (struct{}, error) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()
			<-release
			mu.Lock()
			inFlight--
			mu.Unlock()
			return struct{}{}, nil
		})
		close(done)
	}()
	close(release)
	<-done

	if peak > 2 {
		t.Fatalf("expected at most 2 concurrent calls, saw %d", peak)
	}
}
