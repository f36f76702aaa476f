package util

import (
	"strings"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

// valuableKeywords always earn a keyword bonus, on top of the hunt's own keywords
var valuableKeywords = []string{
	"web", "app", "tech", "code", "dev", "cloud", "data", "shop", "store", "buy",
	"market", "online", "digital", "smart", "eco", "health", "learn", "ai", "lab", "hub",
}

// score weights
const (
	lengthWeight       = 0.35
	brandabilityWeight = 0.25
	dashPenaltyWeight  = 0.15
	tldWeight          = 0.15
	keywordWeight      = 0.10
)

// EvaluateDomain scores a domain for how desirable it is to own. Short,
// letter-only, pronounceable names on popular TLDs rank highest. Names
// containing one of keywords (or a generally valuable word) get a bonus.
func EvaluateDomain(domainName string, keywords []string) domain.DomainInfo {
	tld := ""
	name := strings.ToLower(domainName)
	if idx := strings.LastIndex(name, "."); idx != -1 {
		tld = name[idx+1:]
		name = name[:idx]
	}

	info := domain.DomainInfo{
		Name:           domainName,
		Length:         len(name),
		TLD:            tld,
		HasDash:        strings.Contains(name, "-"),
		IsLetterOnly:   IsLetterOnly(name),
		IsLetterNumber: IsLetterNumberPattern(name),
	}

	info.LengthScore = lengthScore(info.Length)
	if info.HasDash {
		info.DashPenalty = 0.3
	}
	info.TLDScore = CalculateTLDScore(tld)
	info.Pronounceable = CalculatePronounceability(name)
	info.KeywordScore = CalculateKeywordScore(name, keywords)
	info.BrandabilityScore = CalculateBrandabilityScore(info)

	info.Score = info.LengthScore*lengthWeight +
		info.BrandabilityScore*brandabilityWeight -
		info.DashPenalty*dashPenaltyWeight +
		info.TLDScore*tldWeight +
		info.KeywordScore*keywordWeight

	info.Score = clamp(info.Score)
	return info
}

func lengthScore(n int) float64 {
	switch {
	case n <= 2:
		return 1.0
	case n == 3:
		return 0.95
	case n == 4:
		return 0.9
	case n <= 6:
		return 0.85
	case n <= 10:
		return 0.8
	default:
		return clamp(0.8 - float64(n-10)/20.0)
	}
}

// IsLetterNumberPattern matches a letter followed only by digits, e.g. d7 or a123
func IsLetterNumberPattern(name string) bool {
	if len(name) < 2 || !isLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isDigit(name[i]) {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsLetterOnly checks if a name contains only letters
func IsLetterOnly(name string) bool {
	for i := 0; i < len(name); i++ {
		if !isLetter(name[i]) {
			return false
		}
	}
	return name != ""
}

// CalculateTLDScore returns a score between 0 and 1 based on TLD preference
func CalculateTLDScore(tld string) float64 {
	switch strings.ToLower(strings.TrimPrefix(tld, ".")) {
	case "com":
		return 1.0
	case "net", "org":
		return 0.9
	case "io", "co", "app", "dev", "ai":
		return 0.85
	case "sh", "me", "cc", "gg", "so", "to":
		return 0.7
	default:
		return 0.5
	}
}

// CalculateKeywordScore rewards names built around a keyword. The closer the
// name is to the bare keyword, the higher the score.
func CalculateKeywordScore(name string, keywords []string) float64 {
	name = strings.ToLower(name)
	best := 0.0
	for _, list := range [][]string{keywords, valuableKeywords} {
		for _, keyword := range list {
			keyword = strings.ToLower(keyword)
			if keyword == "" || !strings.Contains(name, keyword) {
				continue
			}
			var s float64
			switch extra := len(name) - len(keyword); {
			case extra <= 3:
				s = 0.9
			case extra <= 6:
				s = 0.7
			default:
				s = 0.5
			}
			best = max(best, s)
		}
	}
	return best
}

// CalculateBrandabilityScore combines pronounceability with memorability
func CalculateBrandabilityScore(info domain.DomainInfo) float64 {
	score := info.Pronounceable

	switch {
	case info.Length <= 4:
		score += 0.3
	case info.Length <= 6:
		score += 0.2
	case info.Length <= 8:
		score += 0.1
	}
	if info.HasDash {
		score -= 0.3
	}
	if info.IsLetterOnly {
		score += 0.2
	}
	return clamp(score)
}

// CalculatePronounceability returns a score between 0 and 1. Vowels raise it,
// runs of more than two consonants lower it.
func CalculatePronounceability(name string) float64 {
	const vowels = "aeiouy"
	const consonants = "bcdfghjklmnpqrstvwxz"

	if name == "" {
		return 0
	}
	name = strings.ToLower(name)
	score := 0.0
	run := 0
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case strings.IndexByte(vowels, c) >= 0:
			score += 0.1
			run = 0
		case strings.IndexByte(consonants, c) >= 0:
			run++
			if run > 2 {
				score -= 0.1
			}
		}
	}
	return clamp(score / float64(len(name)) * 2)
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
