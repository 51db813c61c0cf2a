package engines

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNoDocument    = errors.New("no document to extract links from")
	ErrUnknownEngine = errors.New("unknown search engine")
)

// Engine identifies one supported search engine layout.
type Engine int

const (
	Google Engine = iota
	Bing
	DuckDuckGo
)

func (e Engine) String() string {
	switch e {
	case Google:
		return "google"
	case Bing:
		return "bing"
	case DuckDuckGo:
		return "duckduckgo"
	}
	return fmt.Sprintf("engine(%d)", int(e))
}

// Ordered: the first fragment contained in the hostname wins.
var hostnameTable = []struct {
	fragment string
	engine   Engine
}{
	{"www.google.", Google},
	{"www.bing.", Bing},
	{"duckduckgo.com", DuckDuckGo},
}

// Identify selects the engine whose hostname fragment appears in hostname.
// Unsupported hosts return false and must be treated as a no-op.
func Identify(hostname string) (Engine, bool) {
	for _, row := range hostnameTable {
		if strings.Contains(hostname, row.fragment) {
			return row.engine, true
		}
	}
	return 0, false
}

// Logger abstracts logging so callers can use logrus or anything with the
// same method set.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Extractor runs an engine's extraction over a page snapshot.
type Extractor struct {
	Resolver    Resolver // used for cross-origin referral links; nil drops them
	Concurrency int      // defaults to 8 if <= 0
	Log         Logger   // optional; nil = no logging
}

// candidate is an anchor accepted by an engine's shape predicate whose
// destination may still need resolving.
type candidate struct {
	href     string
	text     *goquery.Selection
	referral bool
}

// Extract returns every result link of the page in document order. Links
// whose URL is invalid or whose referral cannot be resolved are dropped.
// Duplicate hostnames are kept. Only a missing document is an error.
func (x *Extractor) Extract(ctx context.Context, engine Engine, page *Page) ([]*SearchEngineLink, error) {
	if page == nil || page.Doc == nil {
		return nil, ErrNoDocument
	}

	var cands []candidate
	switch engine {
	case Google:
		cands = googleCandidates(page)
	case Bing:
		cands = bingCandidates(page)
	case DuckDuckGo:
		cands = duckDuckGoCandidates(page)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}

	return x.settleCandidates(ctx, cands), nil
}

func (x *Extractor) settleCandidates(ctx context.Context, cands []candidate) []*SearchEngineLink {
	log := x.Log
	if log == nil {
		log = nopLogger{}
	}
	limit := x.Concurrency
	if limit <= 0 {
		limit = 8
	}

	links, errs := Settle(ctx, limit, len(cands), func(ctx context.Context, i int) (*SearchEngineLink, error) {
		c := cands[i]
		href := c.href
		if c.referral {
			if x.Resolver == nil {
				return nil, fmt.Errorf("%w: %s", ErrNoResolver, href)
			}
			resolved, err := x.Resolver.Resolve(ctx, href)
			if err != nil {
				return nil, err
			}
			href = resolved
		}
		return newSearchEngineLink(href, c.text)
	})
	for _, err := range errs {
		log.Debugf("Dropping result link: %v", err)
	}
	return links
}
