package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

func TestConsole_Plain(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false, false)

	c.Available(
		domain.Candidate{Domain: "free.dev", Strategy: "Short Combos"},
		domain.Verdict{Method: domain.MethodDNS, Available: domain.Available, Note: "verify"},
		"~$12/yr",
	)
	c.Taken("taken.com")
	c.Inconclusive("odd.com", "")
	c.Stats(domain.Stats{Checked: 3, Found: 1})

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "free.dev")
	assert.Contains(t, out, "~$12/yr")
	assert.Contains(t, out, "(Short Combos via dns) verify")
	assert.Contains(t, out, "✗ taken.com")
	assert.Contains(t, out, "odd.com")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "Checked: 3  Found: 1")
}

func TestConsole_PremiumAndColor(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true, false)

	c.Available(domain.Candidate{Domain: "gem.io"}, domain.Verdict{Method: domain.MethodEPP, Premium: true}, "$2499/yr")

	assert.Contains(t, buf.String(), "[PREMIUM]")
	assert.Contains(t, buf.String(), colorGreen)
	assert.Contains(t, buf.String(), colorReset)
}

func TestConsole_QuietSkipsTaken(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false, true).Taken("taken.com")
	assert.Empty(t, buf.String())
}

func TestConsole_ResumingOnlyWithHistory(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false, false)

	c.Resuming(domain.Stats{})
	assert.Empty(t, buf.String())

	c.Resuming(domain.Stats{Checked: 10, Found: 2})
	assert.Contains(t, buf.String(), "10 already checked, 2 found so far")
}

func TestConsole_Banner(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false, false).Banner(&domain.Config{
		TLDs:            []string{".com", ".dev"},
		MaxPricePerYear: 15,
		Strategies:      []string{"short", "combo"},
	})
	assert.Contains(t, buf.String(), "TLDs: .com, .dev")
	assert.Contains(t, buf.String(), "Max price: $15/yr")
	assert.Contains(t, buf.String(), "Strategies: short, combo")
}

func TestVerdict(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false, false)

	Verdict(c, domain.Verdict{Domain: "a.com", Available: domain.Available, Method: domain.MethodRDAP}, "~$12/yr")
	Verdict(c, domain.Verdict{Domain: "b.com", Available: domain.Taken}, "")
	Verdict(c, domain.Verdict{Domain: "c.com", Reason: "all checks inconclusive"}, "")

	out := buf.String()
	assert.Contains(t, out, "✓ a.com")
	assert.Contains(t, out, "✗ b.com")
	assert.Contains(t, out, "all checks inconclusive")
}
