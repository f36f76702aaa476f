package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// BootstrapURL is the IANA RDAP bootstrap file for DNS
	BootstrapURL     = "https://data.iana.org/rdap/dns.json"
	bootstrapTimeout = 15 * time.Second
)

// seedServers is used when the bootstrap file cannot be fetched
var seedServers = map[string]string{
	"com": "https://rdap.verisign.com/com/v1/",
	"net": "https://rdap.verisign.com/net/v1/",
	"org": "https://rdap.publicinterestregistry.org/rdap/",
	"dev": "https://pubapi.registry.google/rdap/",
	"app": "https://pubapi.registry.google/rdap/",
}

// Directory maps TLDs to RDAP base URLs. It is filled at most once, on
// first use; concurrent first callers wait for the same fetch. A failed
// fetch falls back to a small seed mapping and is never retried.
type Directory struct {
	url     string
	client  *http.Client
	timeout time.Duration

	once     sync.Once
	servers  map[string]string
	fromSeed bool
}

// NewDirectory creates a directory backed by the bootstrap file at url;
// an empty url uses BootstrapURL and a nil client uses http.DefaultClient.
func NewDirectory(url string, client *http.Client) *Directory {
	if url == "" {
		url = BootstrapURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Directory{url: url, client: client, timeout: bootstrapTimeout}
}

// Server returns the RDAP base URL for tld (without leading dot)
func (d *Directory) Server(tld string) (string, bool) {
	d.load()
	s, ok := d.servers[strings.ToLower(strings.TrimPrefix(tld, "."))]
	return s, ok
}

// Warmup populates the directory and returns its size
func (d *Directory) Warmup() int {
	d.load()
	return len(d.servers)
}

// FromSeed reports whether the directory fell back to the seed mapping
func (d *Directory) FromSeed() bool {
	d.load()
	return d.fromSeed
}

func (d *Directory) load() {
	d.once.Do(func() {
		servers, err := d.fetch()
		if err != nil {
			log.Warn().Err(err).Str("url", d.url).Msg("RDAP bootstrap unavailable, using seed servers")
			servers = make(map[string]string, len(seedServers))
			for tld, s := range seedServers {
				servers[tld] = s
			}
			d.fromSeed = true
		} else {
			log.Debug().Int("tlds", len(servers)).Msg("RDAP bootstrap loaded")
		}
		d.servers = servers
	})
}

// fetch runs on its own deadline so a caller's cancellation cannot leave
// the directory half built for everyone else.
func (d *Directory) fetch() (map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bootstrap returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Services [][][]string `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding bootstrap: %w", err)
	}

	servers := make(map[string]string)
	for _, service := range body.Services {
		if len(service) < 2 || len(service[1]) == 0 {
			continue
		}
		for _, tld := range service[0] {
			servers[strings.ToLower(tld)] = service[1][0]
		}
	}
	if len(servers) == 0 {
		return nil, errors.New("bootstrap lists no services")
	}
	return servers, nil
}
