package engines

import (
	"strings"

	"github.com/discontent/discontent/pkg/link"
)

// Bing wraps results in a referral URL for some browsers only, e.g.
//
//	https://www.bing.com/ck/a?!&&p=...
//
// while others get the destination directly. Wrapped ones are resolved by
// fetching the redirector page.
const bingReferralMarker = "www.bing.com/ck"

// bingCandidates keeps anchors that are the only element inside an h2. The
// anchor itself carries the icon.
func bingCandidates(p *Page) []candidate {
	var out []candidate
	for _, a := range p.anchors() {
		if !isOnlyChildOfHeading(a, "h2") {
			continue
		}
		href := p.absoluteHref(a)
		if !link.IsValidHTTPURL(href) {
			continue
		}
		out = append(out, candidate{
			href:     href,
			text:     a,
			referral: strings.Contains(href, bingReferralMarker),
		})
	}
	return out
}
