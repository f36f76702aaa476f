// Package resolver decides whether a domain is registrable by asking, in
// order, an authoritative status service, the registry's RDAP server and
// finally DNS. The first conclusive answer wins.
package resolver

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

// DNSNote is attached to every conclusive DNS verdict
const DNSNote = "DNS fallback - verify before purchasing"

// Checker is one source of availability information. Implementations
// report failures as an inconclusive verdict with a reason instead of an error.
type Checker interface {
	Check(ctx context.Context, name string) domain.Verdict
}

// CheckerFunc adapts a function to the Checker interface
type CheckerFunc func(ctx context.Context, name string) domain.Verdict

func (f CheckerFunc) Check(ctx context.Context, name string) domain.Verdict {
	return f(ctx, name)
}

// Resolver runs the cascade
type Resolver struct {
	authoritative Checker
	registry      Checker
	nameservice   Checker
}

// New creates a resolver from its three stages
func New(authoritative, registry, nameservice Checker) *Resolver {
	return &Resolver{
		authoritative: authoritative,
		registry:      registry,
		nameservice:   nameservice,
	}
}

// Resolve returns exactly one verdict for name. Stages run strictly one
// after another and later stages only run when earlier ones are inconclusive.
func (r *Resolver) Resolve(ctx context.Context, name string) domain.Verdict {
	name = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	logger := log.With().Str("domain", name).Logger()

	v := r.authoritative.Check(ctx, name)
	if v.Available.Conclusive() {
		return finish(name, v)
	}
	logger.Debug().Str("method", string(v.Method)).Str("reason", v.Reason).Msg("Authoritative check inconclusive")

	v = r.registry.Check(ctx, name)
	if v.Available.Conclusive() {
		return finish(name, v)
	}
	logger.Debug().Str("method", string(v.Method)).Str("reason", v.Reason).Msg("Registry check inconclusive")

	v = r.nameservice.Check(ctx, name)
	if v.Available.Conclusive() {
		v.Note = DNSNote
		return finish(name, v)
	}
	logger.Debug().Str("method", string(v.Method)).Str("reason", v.Reason).Msg("DNS check inconclusive")

	return domain.Verdict{
		Domain:    name,
		Method:    domain.MethodUnknown,
		Available: domain.Unknown,
		Reason:    "all checks inconclusive",
	}
}

func finish(name string, v domain.Verdict) domain.Verdict {
	v.Domain = name
	return v
}

func inconclusive(method domain.Method, reason string) domain.Verdict {
	return domain.Verdict{Method: method, Available: domain.Unknown, Reason: reason}
}

func conclusive(method domain.Method, available bool) domain.Verdict {
	a := domain.Taken
	if available {
		a = domain.Available
	}
	return domain.Verdict{Method: method, Available: a}
}

// tldOf returns the last label of name without the dot
func tldOf(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}
