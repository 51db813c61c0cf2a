package storage

import "github.com/discontent/discontent/pkg/scores"

// HostnameTally is the vote aggregate of one hostname.
type HostnameTally struct {
	Hostname string
	scores.Tally
}

// DomainTally aggregates the tallies of every hostname under one
// registrable domain.
type DomainTally struct {
	Domain    string
	Hostnames int
	scores.Tally
}

// VoteResult describes what a vote did to the stored state.
type VoteResult struct {
	Previous scores.Vote // 0 if the user had not voted on the hostname
	Changed  bool
	Tally    scores.Tally
}

// Stats summarises the vote tables.
type Stats struct {
	Hostnames int
	Votes     int
	Users     int
	ByScore   map[scores.Score]int
}
