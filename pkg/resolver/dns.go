package resolver

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

const (
	dnsTimeout         = 5 * time.Second
	fallbackNameserver = "1.1.1.1:53"
	resolvConf         = "/etc/resolv.conf"
)

// NSChecker infers registration from the presence of NS records.
// It talks DNS directly so it can tell NXDOMAIN apart from an empty answer.
type NSChecker struct {
	server  string
	client  *dns.Client
	timeout time.Duration
}

// NewNSChecker queries server (host or host:port). An empty server uses
// the first nameserver from /etc/resolv.conf.
func NewNSChecker(server string) *NSChecker {
	if server == "" {
		server = systemNameserver()
	} else if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &NSChecker{
		server:  server,
		client:  &dns.Client{Net: "udp"},
		timeout: dnsTimeout,
	}
}

func systemNameserver() string {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil || len(conf.Servers) == 0 {
		log.Debug().Err(err).Str("server", fallbackNameserver).Msg("No system nameserver, using fallback")
		return fallbackNameserver
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port)
}

func (c *NSChecker) Check(ctx context.Context, name string) domain.Verdict {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeNS)

	in, _, err := c.client.ExchangeContext(ctx, m, c.server)
	if err != nil {
		log.Debug().Err(err).Str("domain", name).Str("server", c.server).Msg("NS lookup failed")
		return inconclusive(domain.MethodDNS, err.Error())
	}

	switch in.Rcode {
	case dns.RcodeNameError:
		return conclusive(domain.MethodDNS, true)
	case dns.RcodeSuccess:
		for _, rr := range in.Answer {
			if _, ok := rr.(*dns.NS); ok {
				return conclusive(domain.MethodDNS, false)
			}
		}
		// NODATA: the name may exist without its own NS records
		return inconclusive(domain.MethodDNS, "inconclusive")
	default:
		return inconclusive(domain.MethodDNS, dns.RcodeToString[in.Rcode])
	}
}
