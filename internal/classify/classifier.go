package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/zanderlewis/reachable/internal/domain"
	"github.com/zanderlewis/reachable/internal/probe"
)

// HTTPProber reports what an HTTP request says about a target.
type HTTPProber interface {
	Probe(ctx context.Context, url string) probe.HTTPResult
}

// HostProber is a pass/fail lookup on a bare host (DNS, WHOIS).
type HostProber interface {
	Probe(ctx context.Context, host string) error
}

// Evidence records what each probe reported for one target. The console
// renders it at high verbosity; classification itself only needs the
// verdict.
type Evidence struct {
	HTTP       probe.HTTPResult
	DNSTried   bool
	DNSErr     error
	WhoisTried bool
	WhoisErr   error
}

// Classifier runs the probe cascade for a target and settles on a
// verdict. Positive HTTP evidence decides on its own. Without it, the
// target stays active only if its host both resolves and holds a
// registration record; a host that fails DNS is inactive outright and
// WHOIS is never consulted for it.
type Classifier struct {
	http  HTTPProber
	dns   HostProber
	whois HostProber
	log   *zap.Logger
}

func New(http HTTPProber, dns, whois HostProber, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{http: http, dns: dns, whois: whois, log: log}
}

// Classify produces exactly one verdict for t.
func (c *Classifier) Classify(ctx context.Context, t domain.Target) (domain.Verdict, Evidence) {
	var ev Evidence

	ev.HTTP = c.http.Probe(ctx, t.URL)
	if ev.HTTP.Alive || ev.HTTP.WWWRedirect {
		return c.decided(t, domain.Active, ev)
	}

	if !t.HasHost() {
		return c.decided(t, domain.Inactive, ev)
	}

	ev.DNSTried = true
	if ev.DNSErr = c.dns.Probe(ctx, t.Host); ev.DNSErr != nil {
		return c.decided(t, domain.Inactive, ev)
	}

	ev.WhoisTried = true
	if ev.WhoisErr = c.whois.Probe(ctx, t.Host); ev.WhoisErr != nil {
		return c.decided(t, domain.Inactive, ev)
	}
	return c.decided(t, domain.Active, ev)
}

func (c *Classifier) decided(t domain.Target, v domain.Verdict, ev Evidence) (domain.Verdict, Evidence) {
	c.log.Debug("target_classified",
		zap.String("target", t.Raw),
		zap.String("verdict", v.String()),
		zap.Int("http_status", ev.HTTP.StatusCode),
		zap.Bool("www_redirect", ev.HTTP.WWWRedirect),
		zap.Bool("dns_tried", ev.DNSTried),
		zap.Bool("whois_tried", ev.WhoisTried),
	)
	return v, ev
}
