package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/discontent/discontent/pkg/link"
	"github.com/discontent/discontent/pkg/scores"
	"github.com/discontent/discontent/pkg/whttp"
)

const DefaultEndpoint = "https://api.discontent.example/v1"

var ErrMalformedResponse = errors.New("malformed scores response")

// StatusError is returned when the scoring API answers with anything other
// than 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("scoring api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("scoring api returned status %d: %s", e.StatusCode, body)
}

// Client talks to the remote scoring API.
type Client struct {
	Endpoint string
	HTTP     *retryablehttp.Client // nil uses the whttp default client
}

func NewClient(endpoint string, httpClient *retryablehttp.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{Endpoint: strings.TrimRight(endpoint, "/"), HTTP: httpClient}
}

// FetchScores asks for the scores of every hostname in req. Hostnames the
// API does not mention are absent from the result.
func (c *Client) FetchScores(ctx context.Context, req scores.ScoresRequest) (scores.ScoresResponse, error) {
	from, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: http.MethodGet,
		URL:    c.Endpoint + "/scores?from=" + url.QueryEscape(string(from)),
		Headers: []whttp.WHTTPHeader{
			{Name: "Accept", Value: "application/json"},
		},
	}, c.HTTP)
	if err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: res.StatusCode, Body: res.BodyString}
	}

	return ParseScores(res.BodyString)
}

// ParseScores reads the API's array of {link:{hostname}, score} items.
func ParseScores(body string) (scores.ScoresResponse, error) {
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	result := gjson.Parse(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedResponse)
	}

	var items []scores.LinkScore
	var parseErr error
	result.ForEach(func(_, item gjson.Result) bool {
		hostname := item.Get("link.hostname")
		if hostname.Type != gjson.String {
			parseErr = fmt.Errorf("%w: item without link.hostname: %s", ErrMalformedResponse, item.Raw)
			return false
		}
		score := scores.Score(item.Get("score").String())
		if !score.Valid() {
			parseErr = fmt.Errorf("%w: unknown score %q for %s", ErrMalformedResponse, score, hostname.String())
			return false
		}
		items = append(items, scores.LinkScore{Link: link.Link{Hostname: hostname.String()}, Score: score})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return scores.FromLinkScores(items), nil
}

// SubmitVote records the user's vote on l.
func (c *Client) SubmitVote(ctx context.Context, l link.Link, value scores.Vote, userID string) error {
	if !value.Valid() {
		return scores.ErrInvalidVote
	}
	body, err := json.Marshal(scores.VoteRequest{Link: l, Value: value, UserID: userID})
	if err != nil {
		return err
	}

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: http.MethodPost,
		URL:    c.Endpoint + "/vote",
		Headers: []whttp.WHTTPHeader{
			{Name: "Content-Type", Value: "application/json"},
		},
		Body: body,
	}, c.HTTP)
	if err != nil {
		return fmt.Errorf("submit vote: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: res.StatusCode, Body: res.BodyString}
	}
	return nil
}
