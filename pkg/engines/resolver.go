package engines

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/discontent/discontent/pkg/whttp"
)

var (
	ErrNoResolver    = errors.New("no resolver for referral link")
	ErrNoDestination = errors.New("could not find link in referral page")
)

// Resolver finds the real destination behind a cross-origin referral URL.
type Resolver interface {
	Resolve(ctx context.Context, referralURL string) (string, error)
}

// The redirector page assigns the destination in an inline script.
var bingDestinationRegex = regexp.MustCompile(`var u = "(.*)"`)

// HTTPResolver fetches the referral page and extracts the destination from
// its body.
type HTTPResolver struct {
	Client *retryablehttp.Client // nil uses the whttp default client
}

func NewHTTPResolver(client *retryablehttp.Client) *HTTPResolver {
	return &HTTPResolver{Client: client}
}

func (r *HTTPResolver) Resolve(ctx context.Context, referralURL string) (string, error) {
	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: "GET",
		URL:    referralURL,
	}, r.Client)
	if err != nil {
		return "", fmt.Errorf("fetch referral %s: %w", referralURL, err)
	}
	return destinationFromReferralBody(res.BodyString)
}

func destinationFromReferralBody(body string) (string, error) {
	match := bingDestinationRegex.FindStringSubmatch(body)
	if match == nil {
		return "", ErrNoDestination
	}
	if len(match) != 2 {
		return "", fmt.Errorf("%w: unexpected match %q", ErrNoDestination, match)
	}
	return match[1], nil
}
