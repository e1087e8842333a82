// Package hostinfo reports the identity of the machine or container the
// process runs in and how long the process has been up.
package hostinfo

import (
	"os"
	"time"
)

// UnknownHostname is reported when the OS cannot resolve a hostname.
const UnknownHostname = "unknown"

// Provider answers hostname and uptime queries. Uptime is measured from the
// moment the Provider was created, so create it once at process start.
type Provider struct {
	startedAt time.Time
	now       func() time.Time
	hostname  func() (string, error)
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock replaces time.Now. The start time is taken from the same clock.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithHostnameFunc replaces os.Hostname.
func WithHostnameFunc(fn func() (string, error)) Option {
	return func(p *Provider) {
		p.hostname = fn
	}
}

// New creates a Provider whose uptime starts now.
func New(opts ...Option) *Provider {
	p := &Provider{
		now:      time.Now,
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.startedAt = p.now()
	return p
}

// Hostname returns the current hostname, looked up on every call.
func (p *Provider) Hostname() string {
	name, err := p.hostname()
	if err != nil || name == "" {
		return UnknownHostname
	}
	return name
}

// StartedAt returns the process start time.
func (p *Provider) StartedAt() time.Time {
	return p.startedAt
}

// Uptime returns the time elapsed since start. It never goes below zero.
func (p *Provider) Uptime() time.Duration {
	d := p.now().Sub(p.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// UptimeSeconds returns Uptime floored to whole seconds.
func (p *Provider) UptimeSeconds() int64 {
	return int64(p.Uptime() / time.Second)
}
