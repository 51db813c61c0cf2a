package scores

import (
	"errors"
	"fmt"
	"strings"

	"github.com/discontent/discontent/pkg/link"
)

var ErrInvalidVote = errors.New("Vote should be -1 or 1")

// Vote is a user's opinion on a hostname.
type Vote int

const (
	Downvote Vote = -1
	Upvote   Vote = 1
)

func (v Vote) Valid() bool {
	return v == Upvote || v == Downvote
}

// ParseVote accepts "good"/"up"/"1" and "bad"/"down"/"-1".
func ParseVote(s string) (Vote, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good", "up", "1", "+1":
		return Upvote, nil
	case "bad", "down", "-1":
		return Downvote, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVote, s)
}

// VoteRequest is the body of the vote endpoint.
type VoteRequest struct {
	Link   link.Link `json:"link"`
	Value  Vote      `json:"value"`
	UserID string    `json:"user_id"`
}
