package engines

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a parsed results page together with the URL it was loaded from.
type Page struct {
	URL *url.URL
	Doc *goquery.Document
}

// NewPage parses an HTML document loaded from pageURL.
func NewPage(pageURL string, r io.Reader) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Page{URL: u, Doc: goquery.NewDocumentFromNode(root)}, nil
}

// Hostname of the page, the input of Identify.
func (p *Page) Hostname() string {
	if p == nil || p.URL == nil {
		return ""
	}
	return p.URL.Hostname()
}

// Render writes the current, possibly annotated, document.
func (p *Page) Render(w io.Writer) error {
	if p == nil || p.Doc == nil || len(p.Doc.Nodes) == 0 {
		return ErrNoDocument
	}
	return html.Render(w, p.Doc.Nodes[0])
}

// anchors takes a one-off snapshot of the page's anchor elements. Later
// mutations are not observed.
func (p *Page) anchors() []*goquery.Selection {
	var out []*goquery.Selection
	p.Doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// absoluteHref mirrors HTMLAnchorElement.href: the href attribute resolved
// against the page URL. Missing or unparsable hrefs give "".
func (p *Page) absoluteHref(a *goquery.Selection) string {
	raw, ok := a.Attr("href")
	if !ok {
		return ""
	}
	raw = strings.TrimSpace(raw)
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if p.URL == nil {
		return ref.String()
	}
	return p.URL.ResolveReference(ref).String()
}

// isOnlyChildOfHeading reports whether the anchor's parent is the given
// heading tag and the anchor is its only element child.
func isOnlyChildOfHeading(a *goquery.Selection, tag string) bool {
	if len(a.Nodes) == 0 {
		return false
	}
	parent := a.Nodes[0].Parent
	if parent == nil || parent.Type != html.ElementNode || parent.Data != tag {
		return false
	}
	elements := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			elements++
		}
	}
	return elements == 1
}
