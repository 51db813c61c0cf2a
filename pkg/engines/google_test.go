package engines

import (
	"context"
	"reflect"
	"testing"
)

const googleResultsPage = `<!DOCTYPE html>
<html><head><title>site - Google Search</title></head>
<body>
  <a href="/preferences">Settings</a>
  <div class="g"><a href="https://r.example/?url=https://en.wikipedia.org"><br><h3>Wikipedia</h3></a></div>
  <div class="g"><a href="https://github.com"><h3>GitHub</h3></a></div>
  <div class="g"><a href="https://twitter.com"><h3>Twitter</h3></a></div>
  <div class="g"><a href="javascript:void(0)"><h3>Not a link</h3></a></div>
  <div class="g"><a href="https://github.com/about"><h3>About GitHub</h3></a></div>
  <a href="https://accounts.google.com">Sign in</a>
</body></html>`

func TestGoogleExtractsAnchorsWithHeading(t *testing.T) {
	p := mustPage(t, "https://www.google.com/search?q=site", googleResultsPage)

	links, err := (&Extractor{}).Extract(context.Background(), Google, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := hostnames(links)
	expect := []string{"en.wikipedia.org", "github.com", "twitter.com", "github.com"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("unexpected hostnames.\nwant: %#v\ngot:  %#v", expect, got)
	}
}

func TestGoogleTextElementIsHeading(t *testing.T) {
	p := mustPage(t, "https://www.google.com/search?q=site", googleResultsPage)

	links, _ := (&Extractor{}).Extract(context.Background(), Google, p)
	if len(links) == 0 {
		t.Fatalf("expected links")
	}
	if links[0].Text() != "Wikipedia" {
		t.Fatalf("expected heading text, got %q", links[0].Text())
	}
}

func TestGoogleRelativeHrefResolvesAgainstPage(t *testing.T) {
	p := mustPage(t, "https://www.google.com/search?q=x",
		`<a href="/url?url=https://docs.example.org/start"><h3>Docs</h3></a>`)

	links, _ := (&Extractor{}).Extract(context.Background(), Google, p)
	got := hostnames(links)
	if !reflect.DeepEqual(got, []string{"docs.example.org"}) {
		t.Fatalf("expected docs.example.org, got %v", got)
	}
}

func TestGoogleDropsInvalidReferralTarget(t *testing.T) {
	p := mustPage(t, "https://www.google.com/search?q=x",
		`<a href="https://r.example/?url=not-a-url"><h3>Broken</h3></a>
		 <a href="https://ok.example"><h3>Fine</h3></a>`)

	links, err := (&Extractor{}).Extract(context.Background(), Google, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := hostnames(links); !reflect.DeepEqual(got, []string{"ok.example"}) {
		t.Fatalf("expected only ok.example, got %v", got)
	}
}

func TestRemoveGoogleReferral(t *testing.T) {
	tests := map[string]string{
		"https://www.google.com/url?url=https://a.com/x": "https://a.com/x",
		"https://b.com/?q=1":                             "https://b.com/?q=1",
		"https://c.com/?url=":                            "https://c.com/?url=",
	}
	for in, want := range tests {
		if got := removeGoogleReferral(in); got != want {
			t.Fatalf("removeGoogleReferral(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractionSnapshotIgnoresLaterMutations(t *testing.T) {
	p := mustPage(t, "https://www.google.com/search?q=x", `<div id="r"><a href="https://one.example"><h3>One</h3></a></div>`)

	links, _ := (&Extractor{}).Extract(context.Background(), Google, p)
	p.Doc.Find("#r").AppendHtml(`<a href="https://two.example"><h3>Two</h3></a>`)

	if got := hostnames(links); !reflect.DeepEqual(got, []string{"one.example"}) {
		t.Fatalf("expected only the snapshot link, got %v", got)
	}
}
