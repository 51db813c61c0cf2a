package engines

import (
	"net/url"

	"github.com/discontent/discontent/pkg/link"
)

// googleCandidates keeps anchors that wrap an h3 title. The h3 carries the
// icon. Google's referral wrapper is unwrapped in place from its url
// query parameter, no request needed.
func googleCandidates(p *Page) []candidate {
	var out []candidate
	for _, a := range p.anchors() {
		heading := a.Find("h3").First()
		if heading.Length() == 0 {
			continue
		}
		href := p.absoluteHref(a)
		if !link.IsValidHTTPURL(href) {
			continue
		}
		out = append(out, candidate{href: removeGoogleReferral(href), text: heading})
	}
	return out
}

func removeGoogleReferral(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if dest := u.Query().Get("url"); dest != "" {
		return dest
	}
	return rawURL
}
