package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/discontent/discontent/internal/utils"
	"github.com/discontent/discontent/pkg/link"
	"github.com/discontent/discontent/pkg/scores"
)

const (
	MinLinksPerRequest = 1
	MaxLinksPerRequest = 100
	maxVoteBody        = 1 << 16
)

var (
	errMissingFrom   = errors.New("Incorrect query parameters. Expected `from`")
	errLinkCount     = fmt.Errorf("Validation error: length. Expected between %d and %d links", MinLinksPerRequest, MaxLinksPerRequest)
	errInvalidUserID = errors.New("User ID must be a valid UUID")
)

// parseScoresQuery validates the `from` parameter before any lookup.
func parseScoresQuery(from string) (scores.ScoresRequest, error) {
	if from == "" {
		return scores.ScoresRequest{}, errMissingFrom
	}
	if !gjson.Valid(from) {
		return scores.ScoresRequest{}, fmt.Errorf("invalid JSON in `from`")
	}
	links := gjson.Get(from, "links")
	if !links.IsArray() {
		return scores.ScoresRequest{}, fmt.Errorf("invalid type: expected an object with a links array")
	}
	n := int(links.Get("#").Int())
	if n < MinLinksPerRequest || n > MaxLinksPerRequest {
		return scores.ScoresRequest{}, errLinkCount
	}

	parsed := make([]link.Link, 0, n)
	var err error
	links.ForEach(func(_, item gjson.Result) bool {
		h := item.Get("hostname").String()
		if err = link.ValidateHostname(h); err != nil {
			return false
		}
		parsed = append(parsed, link.Link{Hostname: h})
		return true
	})
	if err != nil {
		return scores.ScoresRequest{}, err
	}
	return scores.NewScoresRequest(parsed), nil
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	req, err := parseScoresQuery(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var out []scores.LinkScore
	if s.Randomize {
		out = s.randomScores(req)
	} else {
		tallies, err := s.Store.Tallies(r.Context(), req.Hostnames())
		if err != nil {
			utils.Log.Warnf("Could not load tallies: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out = scores.Calculate(req, tallies)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

type voteBody struct {
	Link   link.Link `json:"link"`
	Value  int       `json:"value"`
	UserID string    `json:"user_id"`
}

type voteReply struct {
	Changed bool         `json:"changed"`
	Score   scores.Score `json:"score"`
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxVoteBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var v voteBody
	if err := json.Unmarshal(body, &v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := link.ValidateHostname(v.Link.Hostname); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	value := scores.Vote(v.Value)
	if !value.Valid() {
		http.Error(w, scores.ErrInvalidVote.Error(), http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(v.UserID)
	if err != nil {
		http.Error(w, errInvalidUserID.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.Store.RecordVote(r.Context(), v.Link.Hostname, userID.String(), value)
	if err != nil {
		utils.Log.Warnf("Could not record vote on %s: %v", v.Link.Hostname, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.Log.Debugf("Vote %d on %s by %s (changed: %v)", value, v.Link.Hostname, userID, res.Changed)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(voteReply{Changed: res.Changed, Score: scores.FromTally(res.Tally)})
}
