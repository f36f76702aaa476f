// Package pricing holds approximate first-year registration prices per TLD.
package pricing

import (
	"fmt"
	"strings"
)

// Unknown is shown for TLDs missing from the table
const Unknown = "price unknown"

// prices in USD per year, keyed by TLD with its leading dot
var prices = map[string]int{
	".com":    12,
	".net":    12,
	".org":    12,
	".dev":    12,
	".app":    14,
	".io":     35,
	".co":     25,
	".ai":     80,
	".sh":     25,
	".xyz":    2,
	".cool":   25,
	".lol":    25,
	".me":     10,
	".cc":     12,
	".tv":     30,
	".gg":     20,
	".so":     25,
	".to":     35,
	".is":     60,
	".it":     15,
	".in":     10,
	".us":     10,
	".uk":     8,
	".de":     8,
	".at":     15,
	".eu":     8,
	".tech":   5,
	".site":   3,
	".online": 3,
	".fun":    3,
	".wtf":    25,
	".ninja":  20,
	".codes":  45,
	".run":    20,
	".cloud":  12,
	".page":   12,
	".life":   5,
	".world":  5,
	".zone":   25,
	".build":  50,
}

func key(tld string) string {
	tld = strings.ToLower(strings.TrimSpace(tld))
	if !strings.HasPrefix(tld, ".") {
		tld = "." + tld
	}
	return tld
}

// PriceOf returns the yearly price of tld. The leading dot is optional.
func PriceOf(tld string) (int, bool) {
	p, ok := prices[key(tld)]
	return p, ok
}

// IsAffordable reports whether tld has a known price at or below max.
// TLDs without a known price are never affordable.
func IsAffordable(tld string, max float64) bool {
	p, ok := PriceOf(tld)
	return ok && float64(p) <= max
}

// Format renders the price of tld for display, e.g. "~$12/yr"
func Format(tld string) string {
	p, ok := PriceOf(tld)
	if !ok {
		return Unknown
	}
	return fmt.Sprintf("~$%d/yr", p)
}

// TLDOf returns the last label of name with a leading dot
func TLDOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i:])
	}
	return "." + strings.ToLower(name)
}
