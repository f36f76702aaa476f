// Package domain contains domain-related models and logic
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Config represents the configuration file structure
type Config struct {
	TLDs            []string `json:"tlds" yaml:"tlds" env:"HUNT_TLDS"`
	MaxPricePerYear float64  `json:"maxPricePerYear" yaml:"maxPricePerYear" env:"HUNT_MAX_PRICE"`
	Keywords        []string `json:"keywords" yaml:"keywords" env:"HUNT_KEYWORDS"`
	PersonalNames   []string `json:"personalNames" yaml:"personalNames" env:"HUNT_NAMES"`
	Strategies      []string `json:"strategies" yaml:"strategies" env:"HUNT_STRATEGIES"`
	RequestDelayMs  int      `json:"requestDelayMs" yaml:"requestDelayMs" env:"HUNT_DELAY_MS"`
	SaveEvery       int      `json:"saveEvery" yaml:"saveEvery" env:"HUNT_SAVE_EVERY"`
	WordsFile       string   `json:"wordsFile" yaml:"wordsFile" env:"HUNT_WORDS_FILE"`
	ResultsFile     string   `json:"resultsFile" yaml:"resultsFile" env:"HUNT_RESULTS_FILE"`
	Authoritative   string   `json:"authoritative" yaml:"authoritative" env:"HUNT_AUTHORITATIVE"`
	DNSServer       string   `json:"dnsServer" yaml:"dnsServer" env:"HUNT_DNS_SERVER"`
	KeepAwake       bool     `json:"keepAwake" yaml:"keepAwake" env:"HUNT_KEEP_AWAKE"`
	Username        string   `json:"username" yaml:"username" env:"LOOPIA_USERNAME"`
	Password        string   `json:"password" yaml:"password" env:"LOOPIA_PASSWORD"`
}

// Method identifies which source produced a verdict
type Method string

const (
	MethodEPP     Method = "epp"
	MethodRDAP    Method = "rdap"
	MethodDNS     Method = "dns"
	MethodUnknown Method = "unknown"
)

// Availability is the tri-state answer of a single check.
// Unknown means the source was inconclusive.
type Availability int

const (
	Unknown Availability = iota
	Available
	Taken
)

// Conclusive reports whether the source gave a definite answer
func (a Availability) Conclusive() bool {
	return a == Available || a == Taken
}

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Taken:
		return "taken"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Unknown as null and the conclusive states as booleans.
func (a Availability) MarshalJSON() ([]byte, error) {
	switch a {
	case Available:
		return []byte("true"), nil
	case Taken:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON
func (a *Availability) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("availability: %w", err)
	}
	*a = AvailabilityOf(v)
	return nil
}

// AvailabilityOf converts a nullable boolean into an Availability
func AvailabilityOf(v *bool) Availability {
	switch {
	case v == nil:
		return Unknown
	case *v:
		return Available
	default:
		return Taken
	}
}

// Verdict represents the outcome of an availability check for one domain
type Verdict struct {
	Domain    string       `json:"domain"`
	Method    Method       `json:"method"`
	Available Availability `json:"available"`
	Reason    string       `json:"reason,omitempty"`
	Note      string       `json:"note,omitempty"`
	Premium   bool         `json:"premium,omitempty"`
	Price     string       `json:"price,omitempty"`
}

// Candidate is a generated domain name tagged with the strategy that produced it
type Candidate struct {
	Domain   string `json:"domain"`
	Strategy string `json:"strategy"`
}

// FoundEntry represents an available domain recorded by a hunt
type FoundEntry struct {
	Domain    string    `json:"domain"`
	Strategy  string    `json:"strategy"`
	Price     string    `json:"price"`
	TLD       string    `json:"tld"`
	Premium   bool      `json:"premium"`
	Method    Method    `json:"method"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Stats summarizes the progress of a hunt
type Stats struct {
	Checked int `json:"checked"`
	Found   int `json:"found"`
}

// DomainInfo represents information about a domain
type DomainInfo struct {
	Name           string
	Length         int
	TLD            string // Top-level domain without the dot (com, io, etc.)
	HasDash        bool
	IsLetterOnly   bool
	IsLetterNumber bool

	// Scoring components
	LengthScore       float64 // Score based on domain length (0-1)
	DashPenalty       float64 // Penalty for domains with dashes (0-1)
	TLDScore          float64 // Score based on TLD preference (0-1)
	Pronounceable     float64 // Score based on pronounceability (0-1)
	BrandabilityScore float64 // Score based on brandability factors (0-1)
	KeywordScore      float64 // Bonus for containing a valuable keyword (0-1)

	Score float64 // Overall score (weighted combination)
}
