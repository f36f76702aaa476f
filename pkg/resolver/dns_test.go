package resolver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

// startNameserver runs an in-process UDP DNS server and returns its address
func startNameserver(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func zone(w dns.ResponseWriter, r *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(r)
	switch r.Question[0].Name {
	case "taken.com.":
		rr, _ := dns.NewRR("taken.com. 300 IN NS ns1.example.net.")
		m.Answer = append(m.Answer, rr)
	case "free.com.":
		m.SetRcode(r, dns.RcodeNameError)
	case "nodata.com.":
	case "broken.com.":
		m.SetRcode(r, dns.RcodeServerFailure)
	case "refused.com.":
		m.SetRcode(r, dns.RcodeRefused)
	}
	_ = w.WriteMsg(m)
}

func TestNSChecker(t *testing.T) {
	addr := startNameserver(t, zone)
	c := NewNSChecker(addr)

	tests := []struct {
		domain string
		want   domain.Verdict
	}{
		{"taken.com", domain.Verdict{Method: domain.MethodDNS, Available: domain.Taken}},
		{"free.com", domain.Verdict{Method: domain.MethodDNS, Available: domain.Available}},
		{"nodata.com", domain.Verdict{Method: domain.MethodDNS, Available: domain.Unknown, Reason: "inconclusive"}},
		{"broken.com", domain.Verdict{Method: domain.MethodDNS, Available: domain.Unknown, Reason: "SERVFAIL"}},
		{"refused.com", domain.Verdict{Method: domain.MethodDNS, Available: domain.Unknown, Reason: "REFUSED"}},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Check(context.Background(), tt.domain))
		})
	}
}

func TestNSChecker_Timeout(t *testing.T) {
	addr := startNameserver(t, func(w dns.ResponseWriter, r *dns.Msg) {
		// never answer
	})
	c := NewNSChecker(addr)
	c.timeout = 100 * time.Millisecond

	v := c.Check(context.Background(), "slow.com")

	assert.Equal(t, domain.MethodDNS, v.Method)
	assert.Equal(t, domain.Unknown, v.Available)
	assert.NotEmpty(t, v.Reason)
}

func TestNewNSChecker_AddsPort(t *testing.T) {
	assert.Equal(t, "9.9.9.9:53", NewNSChecker("9.9.9.9").server)
	assert.Equal(t, "127.0.0.1:5353", NewNSChecker("127.0.0.1:5353").server)
	assert.NotEmpty(t, NewNSChecker("").server)
}

func TestResolve_DNSStageEndToEnd(t *testing.T) {
	addr := startNameserver(t, zone)
	epp := unsure(domain.MethodEPP, "HTTP 500")
	rdap := unsure(domain.MethodRDAP, "no server for TLD")

	r := New(epp, rdap, NewNSChecker(addr))

	v := r.Resolve(context.Background(), "taken.com")
	assert.Equal(t, domain.Taken, v.Available)
	assert.Equal(t, domain.MethodDNS, v.Method)
	assert.Equal(t, DNSNote, v.Note)

	v = r.Resolve(context.Background(), "free.com")
	assert.Equal(t, domain.Available, v.Available)
	assert.Equal(t, DNSNote, v.Note)

	v = r.Resolve(context.Background(), "nodata.com")
	assert.Equal(t, domain.MethodUnknown, v.Method)
	assert.Empty(t, v.Note)
}
