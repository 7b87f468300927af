package probe

import (
	"context"
	"strings"
	"time"

	"github.com/likexian/whois"
	"go.uber.org/zap"
)

// WhoisProber asks the registry whether a host's domain holds a
// registration record. Server selection is table-driven by TLD; hosts
// under an unmapped TLD fail the probe rather than guessing a server.
type WhoisProber struct {
	timeout time.Duration
	query   func(domain, server string) (string, error)
	log     *zap.Logger
}

func NewWhoisProber(timeout time.Duration, log *zap.Logger) *WhoisProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	client := whois.NewClient().SetTimeout(timeout)
	return &WhoisProber{
		timeout: timeout,
		query: func(domain, server string) (string, error) {
			return client.Whois(domain, server)
		},
		log: log,
	}
}

// Probe succeeds only when the registry returns a non-empty record for
// host. Everything else, including a TLD with no known server, is a
// RegistrationError for this one target.
func (p *WhoisProber) Probe(ctx context.Context, host string) error {
	if err := ctx.Err(); err != nil {
		return &RegistrationError{Host: host, Reason: "cancelled", Err: err}
	}

	server, ok := serverFor(host)
	if !ok {
		rerr := &RegistrationError{Host: host, Reason: "no whois server known for tld"}
		p.log.Debug("whois_probe_failed", zap.String("host", host), zap.Error(rerr))
		return rerr
	}

	record, err := p.query(host, server)
	if err != nil {
		rerr := &RegistrationError{Host: host, Reason: "query failed", Err: err}
		p.log.Debug("whois_probe_failed",
			zap.String("host", host),
			zap.String("server", server),
			zap.Error(rerr),
		)
		return rerr
	}
	if strings.TrimSpace(record) == "" {
		rerr := &RegistrationError{Host: host, Reason: "empty response"}
		p.log.Debug("whois_probe_failed",
			zap.String("host", host),
			zap.String("server", server),
			zap.Error(rerr),
		)
		return rerr
	}

	p.log.Debug("whois_probe", zap.String("host", host), zap.String("server", server))
	return nil
}
