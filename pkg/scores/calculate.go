package scores

import (
	"math/rand"

	"github.com/discontent/discontent/pkg/link"
)

const (
	GoodScoreBound          = 20
	BadScoreBound           = -10
	ControversialVotesBound = 50
)

// Tally is the running vote aggregate of a hostname.
type Tally struct {
	SumOfVotes   int
	CountOfVotes int
}

// FromTally turns a vote aggregate into a score.
func FromTally(t Tally) Score {
	switch {
	case t.SumOfVotes >= GoodScoreBound:
		return Good
	case t.SumOfVotes <= BadScoreBound:
		return Bad
	case t.CountOfVotes > ControversialVotesBound:
		return Controversial
	default:
		return NoScore
	}
}

// Calculate scores every link of the request, NoScore when no tally exists.
func Calculate(req ScoresRequest, tallies map[string]Tally) []LinkScore {
	out := make([]LinkScore, 0, req.Len())
	for _, l := range req.links {
		t, ok := tallies[l.Hostname]
		if !ok {
			out = append(out, LinkScore{Link: l, Score: NoScore})
			continue
		}
		out = append(out, LinkScore{Link: l, Score: FromTally(t)})
	}
	return out
}

// Random assigns a random score to every link. Used for local development.
func Random(req ScoresRequest, rnd *rand.Rand) []LinkScore {
	out := make([]LinkScore, 0, req.Len())
	for _, l := range req.links {
		out = append(out, LinkScore{Link: link.Link{Hostname: l.Hostname}, Score: All[rnd.Intn(len(All))]})
	}
	return out
}
