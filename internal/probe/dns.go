package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
)

// DNSProber resolves hosts through the OS resolver configuration.
type DNSProber struct {
	timeout time.Duration
	lookup  func(ctx context.Context, host string) ([]net.IP, error)
	log     *zap.Logger
}

func NewDNSProber(timeout time.Duration, log *zap.Logger) *DNSProber {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &net.Resolver{}
	return &DNSProber{
		timeout: timeout,
		lookup: func(ctx context.Context, host string) ([]net.IP, error) {
			return r.LookupIP(ctx, "ip", host)
		},
		log: log,
	}
}

// Probe resolves host. A nil return means the name resolved to at least
// one address; every resolver failure (NXDOMAIN, SERVFAIL, timeout)
// comes back as a ResolutionError.
func (p *DNSProber) Probe(ctx context.Context, host string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.lookup(ctx, host); err != nil {
		rerr := &ResolutionError{Host: host, Err: err}
		p.log.Debug("dns_probe_failed",
			zap.String("host", host),
			zap.String("class", dnsClass(err)),
			zap.Error(rerr),
		)
		return rerr
	}
	p.log.Debug("dns_probe", zap.String("host", host))
	return nil
}

func dnsClass(err error) string {
	var de *net.DNSError
	if errors.As(err, &de) {
		if de.IsNotFound {
			return "NXDOMAIN"
		}
		if de.IsTemporary || de.Timeout() {
			return "SERVFAIL_or_TIMEOUT"
		}
	}
	return "ERROR"
}
