package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StatusClass buckets an HTTP status code by what it says about the
// target's liveness.
type StatusClass uint8

const (
	// ClassNone means no status was obtained at all.
	ClassNone StatusClass = iota
	// ClassActive codes prove a responding, configured server.
	ClassActive
	// ClassInactive codes state that the resource or domain is gone.
	ClassInactive
	// ClassAmbiguous codes prove neither; the fallback probes decide.
	ClassAmbiguous
)

// Codes that count as proof of life: the success and redirection
// families plus the client and server errors only a live, configured
// site can answer with (auth walls, method filters, rate limits,
// crashed backends).
var activeCodes = map[int]struct{}{
	200: {}, 201: {}, 202: {}, 203: {}, 204: {}, 205: {}, 206: {},
	300: {}, 301: {}, 302: {}, 303: {}, 304: {}, 307: {}, 308: {},
	401: {}, 403: {}, 405: {}, 406: {}, 407: {}, 408: {}, 409: {},
	410: {}, 429: {},
	500: {}, 501: {}, 502: {}, 503: {}, 504: {}, 505: {},
}

// Codes that explicitly announce absence. 410 appears in both tables;
// the active table wins, so a bare 410 still counts as a live server.
var inactiveCodes = map[int]struct{}{
	404: {}, 410: {}, 451: {},
}

func classifyStatus(code int) StatusClass {
	if _, ok := activeCodes[code]; ok {
		return ClassActive
	}
	if _, ok := inactiveCodes[code]; ok {
		return ClassInactive
	}
	return ClassAmbiguous
}

// HTTPResult is the outcome of one HTTP probe. A transport-level failure
// leaves the zero value: no status, not alive, no redirect.
type HTTPResult struct {
	StatusCode  int
	Class       StatusClass
	Alive       bool
	WWWRedirect bool
	FinalURL    string
}

const (
	maxRedirects = 10

	userAgent = "reachable/1.1 (+https://github.com/zanderlewis/reachable)"
)

// HTTPProber issues GET requests and buckets the answering status code.
// Client is exported so tests can swap the transport.
type HTTPProber struct {
	Client *http.Client
	log    *zap.Logger
}

func NewHTTPProber(timeout time.Duration, log *zap.Logger) *HTTPProber {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPProber{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 100,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		log: log,
	}
}

// Probe GETs url and reports what the answer says about the target.
// It never returns an error: transport failures, including the redirect
// cap, come back as the zero result and the fallback probes take over.
// WWWRedirect is set whenever the final host after redirects carries a
// "www." prefix, which on its own is treated as proof of life.
func (p *HTTPProber) Probe(ctx context.Context, url string) HTTPResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.log.Debug("http_probe_error",
			zap.String("url", url),
			zap.Error(&TransportError{URL: url, Err: err}),
		)
		return HTTPResult{}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		p.log.Debug("http_probe_error",
			zap.String("url", url),
			zap.Error(&TransportError{URL: url, Err: err}),
		)
		return HTTPResult{}
	}
	defer resp.Body.Close()

	res := HTTPResult{
		StatusCode: resp.StatusCode,
		Class:      classifyStatus(resp.StatusCode),
		FinalURL:   resp.Request.URL.String(),
	}
	res.Alive = res.Class == ClassActive
	res.WWWRedirect = strings.HasPrefix(resp.Request.URL.Hostname(), "www.")

	p.log.Debug("http_probe",
		zap.String("url", url),
		zap.Int("status", res.StatusCode),
		zap.Bool("alive", res.Alive),
		zap.Bool("www_redirect", res.WWWRedirect),
	)
	return res
}
