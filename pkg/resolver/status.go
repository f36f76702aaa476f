package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

const (
	// StatusEndpoint is the registrar-grade domain status service
	StatusEndpoint = "https://domains.revved.com/v1/domainStatus"
	statusTimeout  = 10 * time.Second
)

// StatusChecker queries the authoritative status service. The service
// rejects requests that do not look like they come from its web frontend.
type StatusChecker struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewStatusChecker creates a checker for endpoint; an empty endpoint uses
// StatusEndpoint and a nil client uses http.DefaultClient.
func NewStatusChecker(endpoint string, client *http.Client) *StatusChecker {
	if endpoint == "" {
		endpoint = StatusEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &StatusChecker{endpoint: endpoint, client: client, timeout: statusTimeout}
}

type statusResponse struct {
	Status []statusEntry `json:"status"`
}

type statusEntry struct {
	Name      string `json:"name"`
	Available *bool  `json:"available"`
	Reason    string `json:"reason"`
	Premium   bool   `json:"premium"`
	Fee       *struct {
		Amount json.Number `json:"amount"`
	} `json:"fee"`
}

func (c *StatusChecker) Check(ctx context.Context, name string) domain.Verdict {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.endpoint + "?domains=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return inconclusive(domain.MethodEPP, err.Error())
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://www.namecheap.com/")
	req.Header.Set("Origin", "https://www.namecheap.com")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("domain", name).Msg("Status request failed")
		return inconclusive(domain.MethodEPP, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return inconclusive(domain.MethodEPP, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return inconclusive(domain.MethodEPP, err.Error())
	}

	for _, entry := range body.Status {
		if !strings.EqualFold(entry.Name, name) {
			continue
		}
		v := domain.Verdict{
			Method:    domain.MethodEPP,
			Available: domain.AvailabilityOf(entry.Available),
			Note:      entry.Reason,
		}
		if !v.Available.Conclusive() {
			v.Reason = "no availability in response"
		}
		if entry.Premium && entry.Fee != nil && entry.Fee.Amount != "" {
			v.Premium = true
			v.Price = fmt.Sprintf("$%s/yr", entry.Fee.Amount)
		}
		return v
	}
	return inconclusive(domain.MethodEPP, "domain not in response")
}
