// Package found implements the found command: list the domains a hunt has
// found, best first.
package found

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
	"github.com/uberswe/DomainHunter/pkg/util"
)

// Ranked is a found domain with its score
type Ranked struct {
	domain.FoundEntry
	Info domain.DomainInfo
}

// Rank scores every entry and sorts them by score, best first. Ties keep
// discovery order.
func Rank(entries []domain.FoundEntry, keywords []string) []Ranked {
	ranked := make([]Ranked, len(entries))
	for i, e := range entries {
		ranked[i] = Ranked{FoundEntry: e, Info: util.EvaluateDomain(e.Domain, keywords)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Info.Score > ranked[j].Info.Score
	})
	return ranked
}

// Print writes at most limit ranked domains as a table. A limit below one
// prints everything.
func Print(w io.Writer, ranked []Ranked, limit int) {
	log.Info().Int("total", len(ranked)).Msg("Found domains")
	if len(ranked) == 0 {
		fmt.Fprintln(w, "\nNo available domains found yet. Run 'domainHunter hunt' first.")
		return
	}

	fmt.Fprintln(w, "\nAvailable domains by score:")
	fmt.Fprintln(w, "===========================")
	fmt.Fprintf(w, "%-4s %-24s %-7s %-7s %-7s %-7s %-12s %-6s %s\n",
		"Rank", "Domain", "Score", "Length", "TLD", "Brand", "Price", "Via", "Strategy")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	if limit < 1 || limit > len(ranked) {
		limit = len(ranked)
	}
	for i, r := range ranked[:limit] {
		price := r.Price
		if r.Premium {
			price += "*"
		}
		fmt.Fprintf(w, "%-4d %-24s %-7.2f %-7.2f %-7.2f %-7.2f %-12s %-6s %s\n",
			i+1,
			r.Domain,
			r.Info.Score,
			r.Info.LengthScore,
			r.Info.TLDScore,
			r.Info.BrandabilityScore,
			price,
			r.Method,
			r.Strategy)
	}
	if limit < len(ranked) {
		fmt.Fprintf(w, "... and %d more\n", len(ranked)-limit)
	}
}
