package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/zanderlewis/reachable/internal/classify"
	"github.com/zanderlewis/reachable/internal/domain"
	"github.com/zanderlewis/reachable/internal/probe"
)

// Console renders the human-readable run output. Level 0 is silent,
// level 1 prints one verdict line per target plus the closing summary,
// level 2 adds per-probe detail. Rendering never feeds back into
// classification.
//
// Each call writes through a single Write so lines from concurrent
// workers interleave only at line boundaries.
type Console struct {
	Out io.Writer

	level    int
	active   func(a ...interface{}) string
	inactive func(a ...interface{}) string
}

func New(level int, noColor bool) *Console {
	if noColor {
		color.NoColor = true
	}
	return &Console{
		Out:      os.Stdout,
		level:    level,
		active:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		inactive: color.New(color.FgRed, color.Bold).SprintFunc(),
	}
}

// Checking announces a target before its probes start.
func (c *Console) Checking(target string) {
	if c.level > 1 {
		fmt.Fprintf(c.Out, "Checking: %s\n", target)
	}
}

// Detail prints what each probe reported for one target.
func (c *Console) Detail(t domain.Target, ev classify.Evidence) {
	if c.level <= 1 {
		return
	}

	var b strings.Builder
	switch ev.HTTP.Class {
	case probe.ClassActive:
		fmt.Fprintf(&b, "HTTP check for %s succeeded with status code %d\n", t.URL, ev.HTTP.StatusCode)
	case probe.ClassInactive:
		fmt.Fprintf(&b, "HTTP check for %s failed with status code %d\n", t.URL, ev.HTTP.StatusCode)
	case probe.ClassAmbiguous:
		fmt.Fprintf(&b, "HTTP check for %s returned status code %d\n", t.URL, ev.HTTP.StatusCode)
	}
	if ev.HTTP.WWWRedirect {
		fmt.Fprintf(&b, "Redirected to www: %s\n", ev.HTTP.FinalURL)
	}
	if ev.DNSTried {
		if ev.DNSErr == nil {
			fmt.Fprintf(&b, "DNS Lookup for %s succeeded\n", t.Host)
		} else {
			fmt.Fprintf(&b, "DNS Lookup for %s failed\n", t.Host)
		}
	}
	if ev.WhoisTried {
		if ev.WhoisErr == nil {
			fmt.Fprintf(&b, "WHOIS Lookup for %s succeeded\n", t.Host)
		} else {
			fmt.Fprintf(&b, "WHOIS Lookup for %s failed: %v\n", t.Host, ev.WhoisErr)
		}
	}
	if b.Len() > 0 {
		fmt.Fprint(c.Out, b.String())
	}
}

// Result prints the colored verdict line for one target.
func (c *Console) Result(target string, v domain.Verdict) {
	if c.level < 1 {
		return
	}
	s := v.String()
	if v == domain.Active {
		s = c.active(s)
	} else {
		s = c.inactive(s)
	}
	fmt.Fprintf(c.Out, "%s: %s\n", target, s)
}

// Finished announces that a target's workflow is done.
func (c *Console) Finished(target string) {
	if c.level > 1 {
		fmt.Fprintf(c.Out, "Finished checking: %s\n", target)
	}
}

// Done prints the closing line and run totals.
func (c *Console) Done(targets, active, inactive, failed int, elapsed time.Duration) {
	if c.level < 1 {
		return
	}
	fmt.Fprintln(c.Out, "All tasks completed.")
	fmt.Fprintf(c.Out, "Checked %d targets in %s: %d active, %d inactive, %d failed\n",
		targets, elapsed.Round(time.Millisecond), active, inactive, failed)
}
