// Package check implements the check command: resolve domains given on the
// command line without touching the hunt's checkpoint.
package check

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/uberswe/DomainHunter/pkg/domain"
	"github.com/uberswe/DomainHunter/pkg/pricing"
	"github.com/uberswe/DomainHunter/pkg/report"
)

// Concurrency bounds the number of domains resolved at once
const Concurrency = 4

// Resolver decides the availability of a single domain
type Resolver interface {
	Resolve(ctx context.Context, name string) domain.Verdict
}

// limiter starts at most one resolution per delay, with the first
// Concurrency starts free
func limiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, Concurrency)
	}
	return rate.NewLimiter(rate.Every(delay), Concurrency)
}

// Run resolves every domain and reports the verdicts in argument order.
// Blank and duplicate arguments are ignored. Resolutions start no faster
// than one per delay once the first Concurrency have gone out; domains not
// started before ctx is cancelled are reported as inconclusive.
func Run(ctx context.Context, domains []string, resolver Resolver, reporter report.Reporter, delay time.Duration) []domain.Verdict {
	names := normalize(domains)
	verdicts := make([]domain.Verdict, len(names))
	limit := limiter(delay)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := limit.Wait(ctx); err != nil {
				verdicts[i] = domain.Verdict{Domain: name, Method: domain.MethodUnknown, Reason: "stopped before check"}
				return nil
			}
			verdicts[i] = resolver.Resolve(ctx, name)
			log.Debug().Str("domain", name).Str("method", string(verdicts[i].Method)).Msg("Checked")
			return nil
		})
	}
	_ = g.Wait()

	for _, v := range verdicts {
		price := v.Price
		if price == "" {
			price = pricing.Format(pricing.TLDOf(v.Domain))
		}
		report.Verdict(reporter, v, price)
	}
	return verdicts
}

func normalize(domains []string) []string {
	seen := make(map[string]bool, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
