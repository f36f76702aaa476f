package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

const rdapTimeout = 8 * time.Second

// unavailableMarkers in a 404 description mean the registry refuses the
// name rather than not knowing it
var unavailableMarkers = []string{"blocked", "reserved", "not available"}

// RDAPChecker looks the domain up at its registry's RDAP server
type RDAPChecker struct {
	dir     *Directory
	client  *http.Client
	timeout time.Duration
}

// NewRDAPChecker creates a checker resolving servers through dir
func NewRDAPChecker(dir *Directory, client *http.Client) *RDAPChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &RDAPChecker{dir: dir, client: client, timeout: rdapTimeout}
}

func (c *RDAPChecker) Check(ctx context.Context, name string) domain.Verdict {
	server, ok := c.dir.Server(tldOf(name))
	if !ok {
		return inconclusive(domain.MethodRDAP, "no server for TLD")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := strings.TrimSuffix(server, "/") + "/domain/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return inconclusive(domain.MethodRDAP, err.Error())
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("domain", name).Str("server", server).Msg("RDAP request failed")
		return inconclusive(domain.MethodRDAP, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		var body struct {
			Description []string `json:"description"`
		}
		// an unreadable 404 body still means the registry has no record
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			desc := strings.ToLower(strings.Join(body.Description, " "))
			for _, marker := range unavailableMarkers {
				if strings.Contains(desc, marker) {
					v := conclusive(domain.MethodRDAP, false)
					v.Note = strings.Join(body.Description, "; ")
					return v
				}
			}
		}
		return conclusive(domain.MethodRDAP, true)
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return conclusive(domain.MethodRDAP, false)
	default:
		return inconclusive(domain.MethodRDAP, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
}
