// Package generator produces candidate domain names from several strategies
// and interleaves them round-robin.
package generator

import (
	"errors"
	"fmt"
	"iter"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

// Strategy keys accepted in configuration
const (
	KeyShort    = "short"
	KeyKeyword  = "keyword"
	KeyPersonal = "personal"
	KeyCombo    = "combo"
	keyExpired  = "expired" // older name for combo
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// IsKnown reports whether key names a strategy
func IsKnown(key string) bool {
	switch key {
	case KeyShort, KeyKeyword, KeyPersonal, KeyCombo, keyExpired:
		return true
	}
	return false
}

// Params are the inputs the strategies draw from
type Params struct {
	Words         []string
	Keywords      []string
	PersonalNames []string
	TLDs          []string
	Strategies    []string
}

// Engine merges strategies round-robin. It is not safe for concurrent use.
type Engine struct {
	active []Strategy
	pos    int
}

// canonical folds aliases onto the key they stand for
func canonical(key string) string {
	if key == keyExpired {
		return KeyCombo
	}
	return key
}

// NewEngine activates one strategy per distinct key in p.Strategies, in
// order of first appearance. Repeated keys and aliases are ignored so no
// name is produced twice.
func NewEngine(p Params) (*Engine, error) {
	strategies := make([]Strategy, 0, len(p.Strategies))
	seen := make(map[string]bool, len(p.Strategies))
	for _, key := range p.Strategies {
		key = canonical(key)
		if seen[key] {
			continue
		}
		seen[key] = true

		switch key {
		case KeyShort:
			strategies = append(strategies, ShortAndCatchy(p.Words, p.TLDs))
		case KeyKeyword:
			strategies = append(strategies, KeywordBased(p.Keywords, p.TLDs))
		case KeyPersonal:
			strategies = append(strategies, PersonalNameBased(p.PersonalNames, p.TLDs))
		case KeyCombo:
			strategies = append(strategies, ShortCombo(p.TLDs))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, key)
		}
	}
	return Merge(strategies...), nil
}

// Merge builds an engine over already constructed strategies.
func Merge(strategies ...Strategy) *Engine {
	return &Engine{active: append([]Strategy(nil), strategies...)}
}

// Next advances the next strategy in the current round. Exhausted
// strategies are dropped for good; false means every strategy is done.
func (e *Engine) Next() (domain.Candidate, bool) {
	for len(e.active) > 0 {
		if e.pos >= len(e.active) {
			e.pos = 0
		}
		s := e.active[e.pos]
		name, ok := s.Next()
		if !ok {
			e.active = append(e.active[:e.pos], e.active[e.pos+1:]...)
			continue
		}
		e.pos++
		return domain.Candidate{Domain: name, Strategy: s.Name()}, true
	}
	return domain.Candidate{}, false
}

// Active returns the number of strategies not yet exhausted
func (e *Engine) Active() int {
	return len(e.active)
}

// All returns the remaining candidates as an iterator
func (e *Engine) All() iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		for {
			c, ok := e.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}
