package domain

import (
	"net/url"
	"strings"
)

// Target is one input line prepared for probing. Raw is the line exactly
// as it appeared in the input file and is what the output files echo
// back. URL is what the HTTP probe requests. Host is what the DNS and
// WHOIS probes look up; it is empty when no hostname could be derived.
type Target struct {
	Raw  string
	URL  string
	Host string
}

// NewTarget derives the probe URL and bare host from one input line.
// Lines already carrying an http or https scheme are requested as-is and
// the host comes out of URL parsing. Anything else is treated as a bare
// hostname and probed over plain http. It never fails: an unparseable
// line still yields a target, just one with no host.
func NewTarget(raw string) Target {
	t := Target{Raw: raw}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		t.URL = raw
		if u, err := url.Parse(raw); err == nil {
			t.Host = u.Hostname()
		}
		return t
	}
	t.URL = "http://" + raw
	t.Host = raw
	return t
}

// HasHost reports whether the DNS and WHOIS probes have anything to look up.
func (t Target) HasHost() bool { return t.Host != "" }
