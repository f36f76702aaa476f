// Package hunt implements the hunt command: pull candidates from the
// generator, resolve each one and record what is available.
package hunt

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
	"github.com/uberswe/DomainHunter/pkg/pricing"
	"github.com/uberswe/DomainHunter/pkg/report"
	"github.com/uberswe/DomainHunter/pkg/util"
)

// Source yields candidates until it is exhausted
type Source interface {
	Next() (domain.Candidate, bool)
}

// Resolver decides the availability of a single domain
type Resolver interface {
	Resolve(ctx context.Context, name string) domain.Verdict
}

// Checkpoint is the resumable state of a hunt
type Checkpoint interface {
	WasChecked(name string) bool
	MarkChecked(name string)
	RecordFound(e domain.FoundEntry)
	Stats() domain.Stats
	Persist() error
}

// Options tune a hunt
type Options struct {
	MaxPrice  float64
	Delay     time.Duration
	SaveEvery int
	KeepAwake bool
}

// OptionsFrom maps the configuration onto hunt options
func OptionsFrom(cfg *domain.Config) Options {
	return Options{
		MaxPrice:  cfg.MaxPricePerYear,
		Delay:     time.Duration(cfg.RequestDelayMs) * time.Millisecond,
		SaveEvery: cfg.SaveEvery,
		KeepAwake: cfg.KeepAwake,
	}
}

// Hunter drives one hunt
type Hunter struct {
	opts     Options
	source   Source
	resolver Resolver
	store    Checkpoint
	reporter report.Reporter
	now      func() time.Time

	// lastDone is when the previous resolution returned
	lastDone time.Time
}

func New(opts Options, source Source, resolver Resolver, store Checkpoint, reporter report.Reporter) *Hunter {
	if opts.SaveEvery < 1 {
		opts.SaveEvery = 1
	}
	return &Hunter{
		opts:     opts,
		source:   source,
		resolver: resolver,
		store:    store,
		reporter: reporter,
		now:      time.Now,
	}
}

// Run hunts until the source is exhausted or ctx is cancelled. Cancellation
// is only observed between resolutions; a resolution in flight always
// completes and is recorded. State is persisted on every return path and a
// failure of that final write is returned.
func (h *Hunter) Run(ctx context.Context) (err error) {
	if h.opts.KeepAwake {
		awake, stop := context.WithCancel(ctx)
		defer stop()
		go util.KeepAwake(awake)
	}

	defer func() {
		perr := h.store.Persist()
		stats := h.store.Stats()
		if perr != nil {
			log.Error().Err(perr).Msg("Failed to save results")
			if err == nil {
				err = fmt.Errorf("final save: %w", perr)
			}
		} else {
			h.reporter.Saved(stats)
		}
		h.reporter.Stats(stats)
	}()

	sinceSave := 0
	for {
		if ctx.Err() != nil {
			log.Info().Msg("Stop requested, saving results")
			return nil
		}

		c, ok := h.source.Next()
		if !ok {
			log.Info().Msg("All domain combinations exhausted, edit the configuration to add more")
			return nil
		}

		if h.store.WasChecked(c.Domain) {
			continue
		}

		tld := pricing.TLDOf(c.Domain)
		if !pricing.IsAffordable(tld, h.opts.MaxPrice) {
			log.Debug().Str("domain", c.Domain).Msg("Skipping unaffordable TLD")
			continue
		}

		if err := h.pause(ctx); err != nil {
			log.Info().Msg("Stop requested while waiting, saving results")
			return nil
		}

		v := h.resolver.Resolve(context.WithoutCancel(ctx), c.Domain)
		h.lastDone = time.Now()
		h.store.MarkChecked(c.Domain)
		h.record(c, v, tld)

		sinceSave++
		if sinceSave >= h.opts.SaveEvery {
			sinceSave = 0
			if err := h.store.Persist(); err != nil {
				log.Error().Err(err).Msg("Periodic save failed")
			}
		}
	}
}

// pause waits until Delay has passed since the previous resolution returned,
// however long that resolution took. It returns early with ctx's error.
func (h *Hunter) pause(ctx context.Context) error {
	if h.lastDone.IsZero() || h.opts.Delay <= 0 {
		return ctx.Err()
	}
	wait := h.opts.Delay - time.Since(h.lastDone)
	if wait <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (h *Hunter) record(c domain.Candidate, v domain.Verdict, tld string) {
	switch v.Available {
	case domain.Available:
		price := v.Price
		if price == "" {
			price = pricing.Format(tld)
		}
		h.reporter.Available(c, v, price)
		h.store.RecordFound(domain.FoundEntry{
			Domain:    c.Domain,
			Strategy:  c.Strategy,
			Price:     price,
			TLD:       tld,
			Premium:   v.Premium,
			Method:    v.Method,
			CheckedAt: h.now().UTC(),
		})
		// a find is saved right away
		if err := h.store.Persist(); err != nil {
			log.Error().Err(err).Str("domain", c.Domain).Msg("Failed to save found domain")
		}
		log.Info().Str("domain", c.Domain).Str("method", string(v.Method)).Msg("Domain available")
	case domain.Taken:
		h.reporter.Taken(c.Domain)
	default:
		h.reporter.Inconclusive(c.Domain, v.Reason)
		log.Debug().Str("domain", c.Domain).Str("reason", v.Reason).Msg("Inconclusive")
	}
}
