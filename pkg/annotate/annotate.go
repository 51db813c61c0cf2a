package annotate

import (
	"github.com/discontent/discontent/pkg/engines"
	"github.com/discontent/discontent/pkg/scores"
)

// Icons holds the symbol shown for each score that gets one.
type Icons struct {
	Good          string `json:"good"`
	Controversial string `json:"controversial"`
	Bad           string `json:"bad"`
}

// SymbolFor returns the icon for score. NoScore, and anything outside the
// closed set, has no icon.
func SymbolFor(score scores.Score, icons Icons) (string, bool) {
	switch score {
	case scores.Good:
		return icons.Good, true
	case scores.Controversial:
		return icons.Controversial, true
	case scores.Bad:
		return icons.Bad, true
	}
	return "", false
}

// Apply prefixes every link whose hostname has a score with the matching
// icon and returns how many elements were touched. Links are never removed
// or reordered.
func Apply(links []*engines.SearchEngineLink, resp scores.ScoresResponse, icons Icons) int {
	touched := 0
	for _, l := range links {
		symbol, ok := SymbolFor(resp.Get(l.Link().Hostname), icons)
		if !ok {
			continue
		}
		l.AddSymbol(symbol)
		touched++
	}
	return touched
}
