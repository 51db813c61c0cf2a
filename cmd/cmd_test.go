package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/discontent/discontent/pkg/scores"
	"github.com/discontent/discontent/pkg/storage"
	"github.com/discontent/discontent/pkg/whttp"
)

const bingPage = `<html><body><h2><a href="https://github.com">GitHub</a></h2></body></html>`

func TestLoadPageFromFileNeedsPageURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.html")
	if err := os.WriteFile(path, []byte(bingPage), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := loadPage(context.Background(), path, "", nil); err == nil {
		t.Fatalf("expected an error without --page-url")
	}

	p, err := loadPage(context.Background(), path, "https://www.bing.com/search?q=github", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Hostname() != "www.bing.com" {
		t.Fatalf("expected www.bing.com, got %s", p.Hostname())
	}
}

func TestLoadPageFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, bingPage)
	}))
	defer srv.Close()

	client, _ := whttp.NewClient(whttp.ClientOptions{})
	p, err := loadPage(context.Background(), srv.URL+"/search", "https://www.bing.com/search?q=x", client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Hostname() != "www.bing.com" || p.Doc.Find("h2 a").Length() != 1 {
		t.Fatalf("unexpected page %s", p.Hostname())
	}

	if _, err := loadPage(context.Background(), srv.URL+"/missing", "", client); err == nil {
		t.Fatalf("expected an error for a 404 page")
	}
}

func TestPrintDomainTallies(t *testing.T) {
	var buf bytes.Buffer
	printDomainTallies(&buf, []storage.DomainTally{
		{Domain: "github.com", Hostnames: 2, Tally: scores.Tally{SumOfVotes: 25, CountOfVotes: 30}},
	})

	out := buf.String()
	for _, want := range []string{"DOMAIN", "github.com", "Good", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, storage.Stats{Hostnames: 3, Votes: 7, Users: 2, ByScore: map[scores.Score]int{scores.NoScore: 3}})

	out := buf.String()
	for _, want := range []string{"HOSTNAMES", "NoScore", "Controversial"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteStatsMarkdown(t *testing.T) {
	var buf bytes.Buffer
	stats := storage.Stats{Hostnames: 2, Votes: 31, Users: 30, ByScore: map[scores.Score]int{scores.Good: 1, scores.NoScore: 1}}
	domains := []storage.DomainTally{
		{Domain: "github.com", Hostnames: 2, Tally: scores.Tally{SumOfVotes: 25, CountOfVotes: 30}},
	}
	if err := writeStatsMarkdown(&buf, stats, domains); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# discontent vote statistics", "## Domains", "`github.com`", "Good"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
