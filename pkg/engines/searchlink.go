package engines

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/discontent/discontent/pkg/link"
)

// SearchEngineLink binds a result's hostname to the one element whose text
// gets the score icon. Several SearchEngineLinks may share a hostname.
type SearchEngineLink struct {
	link link.Link
	text *goquery.Selection
}

func newSearchEngineLink(rawURL string, text *goquery.Selection) (*SearchEngineLink, error) {
	l, err := link.FromURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &SearchEngineLink{link: l, text: text.First()}, nil
}

func (s *SearchEngineLink) Link() link.Link { return s.link }

// Text is the element's current text content.
func (s *SearchEngineLink) Text() string {
	return s.text.Text()
}

// AddSymbol prefixes the element's text with "symbol " unless the text
// already starts with symbol. A different symbol already in place is not
// detected and gets a second prefix.
func (s *SearchEngineLink) AddSymbol(symbol string) {
	current := s.text.Text()
	if strings.HasPrefix(current, symbol) {
		return
	}
	s.text.SetText(symbol + " " + current)
}
