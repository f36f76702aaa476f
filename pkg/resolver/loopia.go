package resolver

import (
	"context"

	"github.com/uberswe/DomainHunter/pkg/api"
	"github.com/uberswe/DomainHunter/pkg/domain"
)

// FreeChecker is the part of the Loopia client the resolver needs
type FreeChecker interface {
	DomainIsFree(domain string) (string, error)
}

// LoopiaChecker uses the registrar's own availability call as the
// authoritative stage.
type LoopiaChecker struct {
	api FreeChecker
}

func NewLoopiaChecker(client FreeChecker) *LoopiaChecker {
	return &LoopiaChecker{api: client}
}

// Check ignores ctx; the XML-RPC client is bounded by its transport timeouts.
func (c *LoopiaChecker) Check(_ context.Context, name string) domain.Verdict {
	status, err := c.api.DomainIsFree(name)
	if err != nil {
		return inconclusive(domain.MethodEPP, err.Error())
	}
	switch status {
	case api.StatusFree:
		return conclusive(domain.MethodEPP, true)
	case api.StatusOccupied:
		return conclusive(domain.MethodEPP, false)
	default:
		return inconclusive(domain.MethodEPP, status)
	}
}
