// Package api provides a client for the Loopia registrar API
package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
	"github.com/rs/zerolog/log"
)

const (
	// LoopiaEndpoint is the production XML-RPC endpoint
	LoopiaEndpoint = "https://api.loopia.se/RPCSERV"

	// Loopia allows 60 calls per hour per API user
	callsPerHour = 60
	callTimeout  = 15 * time.Second
)

// Statuses returned by domainIsFree
const (
	StatusFree     = "OK"
	StatusOccupied = "DOMAIN_OCCUPIED"
)

var (
	ErrCallLimit    = errors.New("API call limit of 60 calls per hour reached")
	ErrUnauthorized = errors.New("stopped after 401 Unauthorized")
	ErrRateLimited  = errors.New("stopped after 429 Too Many Requests")
)

// Client wraps an xmlrpc.Client and automatically inserts
// username + password as the first two parameters of every call.
type Client struct {
	username string
	password string
	rpc      *xmlrpc.Client

	// Rate limiting
	callsMutex    sync.Mutex
	callsThisHour int
	hourStartTime time.Time
	stopOn401     bool // set after a 401, no further calls are sent
	stopOn429     bool // set after a 429, no further calls are sent
	now           func() time.Time
}

// NewClient creates a new Loopia API client. An empty endpoint uses LoopiaEndpoint.
func NewClient(endpoint, username, password string) (*Client, error) {
	if endpoint == "" {
		endpoint = LoopiaEndpoint
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: callTimeout}).DialContext,
		TLSHandshakeTimeout:   callTimeout,
		ResponseHeaderTimeout: callTimeout,
	}

	c, err := xmlrpc.NewClient(endpoint, transport)
	if err != nil {
		return nil, err
	}
	return &Client{
		username:      username,
		password:      password,
		rpc:           c,
		hourStartTime: time.Now(),
		now:           time.Now,
	}, nil
}

// reserve takes one call from the hourly budget
func (c *Client) reserve() (int, error) {
	c.callsMutex.Lock()
	defer c.callsMutex.Unlock()

	if c.stopOn401 {
		return 0, ErrUnauthorized
	}
	if c.stopOn429 {
		return 0, ErrRateLimited
	}

	now := c.now()
	if now.Sub(c.hourStartTime) >= time.Hour {
		log.Debug().
			Int("previous_hour_calls", c.callsThisHour).
			Time("new_hour_start", now).
			Msg("Resetting API call counter for new hour")
		c.callsThisHour = 0
		c.hourStartTime = now
	}

	if c.callsThisHour >= callsPerHour {
		return 0, ErrCallLimit
	}
	c.callsThisHour++
	return c.callsThisHour, nil
}

// Call invokes an XML‑RPC method with authentication prepended.
func (c *Client) Call(method string, params ...interface{}) (interface{}, error) {
	all := append([]interface{}{c.username, c.password}, params...)

	reqLogger := log.With().
		Str("method", method).
		Str("operation", "api_call").
		Logger()

	callNumber, err := c.reserve()
	if err != nil {
		reqLogger.Warn().Err(err).Msg("API call refused")
		return nil, err
	}

	reqLogger.Debug().
		Interface("params", params).
		Int("calls_this_hour", callNumber).
		Msg("Sending API request")

	start := time.Now()

	var reply interface{}
	err = c.rpc.Call(method, all, &reply)

	respLogger := reqLogger.With().
		Dur("duration_ms", time.Since(start)).
		Logger()

	if err != nil {
		respLogger.Error().Err(err).Msg("API call failed")

		// xmlrpc only exposes the HTTP status in the error text
		msg := err.Error()
		switch {
		case strings.Contains(msg, "401"):
			c.callsMutex.Lock()
			c.stopOn401 = true
			c.callsMutex.Unlock()
			respLogger.Error().Msg("Received 401 Unauthorized error, stopping further API calls")
		case strings.Contains(msg, "429"):
			c.callsMutex.Lock()
			c.stopOn429 = true
			c.callsMutex.Unlock()
			respLogger.Error().Msg("Received 429 Too Many Requests error, stopping further API calls")
		}
		return nil, err
	}

	respLogger.Debug().Interface("response", reply).Msg("API call successful")
	return reply, nil
}

// DomainIsFree asks Loopia whether domain can be registered. The returned
// status is StatusFree, StatusOccupied or one of Loopia's error statuses.
func (c *Client) DomainIsFree(domain string) (string, error) {
	reply, err := c.Call("domainIsFree", domain)
	if err != nil {
		return "", err
	}
	status, ok := reply.(string)
	if !ok {
		return "", fmt.Errorf("unexpected response format from domainIsFree: %T", reply)
	}
	return status, nil
}
