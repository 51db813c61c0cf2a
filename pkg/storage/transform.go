package storage

import (
	"sort"

	"github.com/discontent/discontent/pkg/link"
)

// GroupByDomain folds hostname tallies into their registrable domain,
// e.g. "docs.github.com" and "github.com" both count for "github.com".
// Hostnames without one (IPs, single labels) are kept as they are.
func GroupByDomain(tallies []HostnameTally) []DomainTally {
	byDomain := make(map[string]*DomainTally)
	for _, t := range tallies {
		domain, ok := link.RegistrableDomain(t.Hostname)
		if !ok {
			domain = t.Hostname
		}
		dt, exists := byDomain[domain]
		if !exists {
			dt = &DomainTally{Domain: domain}
			byDomain[domain] = dt
		}
		dt.Hostnames++
		dt.SumOfVotes += t.SumOfVotes
		dt.CountOfVotes += t.CountOfVotes
	}

	out := make([]DomainTally, 0, len(byDomain))
	for _, dt := range byDomain {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out
}
