// Package report prints hunt progress to the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

const (
	colorGreen  = "\033[92m"
	colorRed    = "\033[91m"
	colorYellow = "\033[93m"
	colorCyan   = "\033[96m"
	colorDim    = "\033[2m"
	colorReset  = "\033[0m"
)

// Reporter receives the user-facing events of a hunt
type Reporter interface {
	Banner(cfg *domain.Config)
	Resuming(s domain.Stats)
	Available(c domain.Candidate, v domain.Verdict, price string)
	Taken(name string)
	Inconclusive(name, reason string)
	Saved(s domain.Stats)
	Stats(s domain.Stats)
}

// Console writes colored lines to an io.Writer. It is safe for concurrent use.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
	quiet bool
}

// NewConsole returns a Console. With color disabled no escape codes are
// written. A quiet console skips taken domains.
func NewConsole(out io.Writer, color, quiet bool) *Console {
	return &Console{out: out, color: color, quiet: quiet}
}

func (c *Console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + colorReset
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Banner(cfg *domain.Config) {
	c.printf("\n%s\n", c.paint(colorCyan, "  DomainHunter"))
	c.printf("  %s\n\n", strings.Repeat("=", 40))
	c.printf("  TLDs: %s\n", strings.Join(cfg.TLDs, ", "))
	c.printf("  Max price: $%g/yr\n", cfg.MaxPricePerYear)
	c.printf("  Keywords: %s\n", strings.Join(cfg.Keywords, ", "))
	c.printf("  Names: %s\n", strings.Join(cfg.PersonalNames, ", "))
	c.printf("  Strategies: %s\n\n", strings.Join(cfg.Strategies, ", "))
}

func (c *Console) Resuming(s domain.Stats) {
	if s.Checked == 0 {
		return
	}
	c.printf("  Resuming: %d already checked, %d found so far\n\n", s.Checked, s.Found)
}

func (c *Console) Available(cand domain.Candidate, v domain.Verdict, price string) {
	line := fmt.Sprintf("  ✓ %-28s %s", cand.Domain, price)
	if v.Premium {
		line += " [PREMIUM]"
	}
	extra := fmt.Sprintf("  (%s via %s)", cand.Strategy, v.Method)
	if v.Note != "" {
		extra += " " + v.Note
	}
	c.printf("%s%s\n", c.paint(colorGreen, line), c.paint(colorDim, extra))
}

func (c *Console) Taken(name string) {
	if c.quiet {
		return
	}
	c.printf("%s\n", c.paint(colorRed, "  ✗ "+name))
}

func (c *Console) Inconclusive(name, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	c.printf("%s\n", c.paint(colorYellow, fmt.Sprintf("  ? %-28s %s", name, reason)))
}

func (c *Console) Saved(s domain.Stats) {
	c.printf("\n  Saved %d found domain(s)\n", s.Found)
}

func (c *Console) Stats(s domain.Stats) {
	c.printf("  Checked: %d  Found: %s\n\n", s.Checked, c.paint(colorGreen, fmt.Sprint(s.Found)))
}

// Verdict prints a single resolution, used by the check command
func Verdict(r Reporter, v domain.Verdict, price string) {
	switch v.Available {
	case domain.Available:
		r.Available(domain.Candidate{Domain: v.Domain, Strategy: "manual"}, v, price)
	case domain.Taken:
		r.Taken(v.Domain)
	default:
		r.Inconclusive(v.Domain, v.Reason)
	}
}
