package scores

import (
	"encoding/json"
	"fmt"

	"github.com/discontent/discontent/pkg/link"
)

// Score is the server side verdict for a hostname.
type Score string

const (
	Good          Score = "Good"
	Bad           Score = "Bad"
	Controversial Score = "Controversial"
	NoScore       Score = "NoScore"
)

// All lists every score in declaration order.
var All = []Score{Good, Bad, Controversial, NoScore}

// Valid reports whether s is one of the four known scores.
func (s Score) Valid() bool {
	switch s {
	case Good, Bad, Controversial, NoScore:
		return true
	}
	return false
}

func (s *Score) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if !Score(raw).Valid() {
		return fmt.Errorf("unknown score %q", raw)
	}
	*s = Score(raw)
	return nil
}

// LinkScore is one element of the remote API's scores array.
type LinkScore struct {
	Link  link.Link `json:"link"`
	Score Score     `json:"score"`
}

// ScoresRequest is an immutable snapshot of the distinct hostnames of a page,
// in first-seen order.
type ScoresRequest struct {
	links []link.Link
}

// NewScoresRequest deduplicates links by hostname.
func NewScoresRequest(links []link.Link) ScoresRequest {
	seen := make(map[string]struct{}, len(links))
	out := make([]link.Link, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.Hostname]; ok {
			continue
		}
		seen[l.Hostname] = struct{}{}
		out = append(out, l)
	}
	return ScoresRequest{links: out}
}

// Links returns a copy of the request's links.
func (r ScoresRequest) Links() []link.Link {
	return append([]link.Link(nil), r.links...)
}

// Hostnames returns the request's hostnames.
func (r ScoresRequest) Hostnames() []string {
	out := make([]string, 0, len(r.links))
	for _, l := range r.links {
		out = append(out, l.Hostname)
	}
	return out
}

func (r ScoresRequest) Len() int { return len(r.links) }

type wireRequest struct {
	Links []link.Link `json:"links"`
}

// MarshalJSON produces {"links":[{"hostname":"..."}]}.
func (r ScoresRequest) MarshalJSON() ([]byte, error) {
	links := r.links
	if links == nil {
		links = []link.Link{}
	}
	return json.Marshal(wireRequest{Links: links})
}

// UnmarshalJSON keeps the dedup invariant for requests built from the wire.
func (r *ScoresRequest) UnmarshalJSON(b []byte) error {
	var w wireRequest
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = NewScoresRequest(w.Links)
	return nil
}

// ScoresResponse maps hostnames to scores. A missing hostname means NoScore.
type ScoresResponse map[string]Score

// Get returns the score for hostname, NoScore when absent.
func (r ScoresResponse) Get(hostname string) Score {
	if s, ok := r[hostname]; ok {
		return s
	}
	return NoScore
}

// FromLinkScores folds the remote API array into a ScoresResponse. Later
// entries win on duplicate hostnames.
func FromLinkScores(items []LinkScore) ScoresResponse {
	out := make(ScoresResponse, len(items))
	for _, it := range items {
		out[it.Link.Hostname] = it.Score
	}
	return out
}
