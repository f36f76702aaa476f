package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xmlrpcString(s string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<methodResponse><params><param><value><string>%s</string></value></param></params></methodResponse>`, s)
}

func TestDomainIsFree(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = io.WriteString(w, xmlrpcString(StatusOccupied))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "user@loopiaapi", "secret")
	require.NoError(t, err)

	status, err := c.DomainIsFree("example.se")
	require.NoError(t, err)
	assert.Equal(t, StatusOccupied, status)

	assert.Contains(t, body, "<methodName>domainIsFree</methodName>")
	assert.Contains(t, body, "user@loopiaapi")
	assert.Contains(t, body, "example.se")
	assert.Less(t, strings.Index(body, "secret"), strings.Index(body, "example.se"), "credentials come first")
}

func TestCall_HourlyBudget(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, xmlrpcString(StatusFree))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "u", "p")
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.hourStartTime = now
	c.callsThisHour = callsPerHour

	_, err = c.DomainIsFree("a.se")
	assert.ErrorIs(t, err, ErrCallLimit)
	assert.Zero(t, hits.Load())

	now = now.Add(time.Hour)
	status, err := c.DomainIsFree("a.se")
	require.NoError(t, err)
	assert.Equal(t, StatusFree, status)
	assert.EqualValues(t, 1, hits.Load())
}

func TestCall_StopsAfterUnauthorized(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "u", "p")
	require.NoError(t, err)

	_, err = c.DomainIsFree("a.se")
	require.Error(t, err)

	_, err = c.DomainIsFree("b.se")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualValues(t, 1, hits.Load())
}
