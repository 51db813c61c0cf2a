package engines

import "github.com/discontent/discontent/pkg/link"

// duckDuckGoCandidates uses the same h2 shape as Bing, but the title text
// lives in the anchor's first child element.
func duckDuckGoCandidates(p *Page) []candidate {
	var out []candidate
	for _, a := range p.anchors() {
		if !isOnlyChildOfHeading(a, "h2") {
			continue
		}
		href := p.absoluteHref(a)
		if !link.IsValidHTTPURL(href) {
			continue
		}
		title := a.Children().First()
		if title.Length() == 0 {
			continue
		}
		out = append(out, candidate{href: href, text: title})
	}
	return out
}
