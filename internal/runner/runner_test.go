package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zanderlewis/reachable/internal/classify"
	"github.com/zanderlewis/reachable/internal/domain"
	"github.com/zanderlewis/reachable/internal/output"
	"github.com/zanderlewis/reachable/internal/probe"
)

// --- fakes ---

type fakeClassifier struct {
	verdicts map[string]domain.Verdict // keyed by raw target; default ACTIVE
	panicOn  string
	delay    time.Duration

	cur atomic.Int64
	max atomic.Int64
}

func (f *fakeClassifier) Classify(ctx context.Context, t domain.Target) (domain.Verdict, classify.Evidence) {
	cur := f.cur.Add(1)
	defer f.cur.Add(-1)
	for {
		old := f.max.Load()
		if cur <= old || f.max.CompareAndSwap(old, cur) {
			break
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if t.Raw == f.panicOn {
		panic("classifier exploded")
	}
	if v, ok := f.verdicts[t.Raw]; ok {
		return v, classify.Evidence{}
	}
	return domain.Active, classify.Evidence{}
}

type fakeRecorder struct {
	mu    sync.Mutex
	recs  map[string]domain.Verdict
	errOn string
}

func (f *fakeRecorder) Record(target string, verdict domain.Verdict) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if target == f.errOn {
		return errors.New("disk full")
	}
	if f.recs == nil {
		f.recs = make(map[string]domain.Verdict)
	}
	f.recs[target] = verdict
	return nil
}

type nopReporter struct{}

func (nopReporter) Checking(string)                         {}
func (nopReporter) Detail(domain.Target, classify.Evidence) {}
func (nopReporter) Result(string, domain.Verdict)           {}
func (nopReporter) Finished(string)                         {}

type panicReporter struct {
	nopReporter
	on string // target whose result line panics
}

func (p panicReporter) Result(target string, _ domain.Verdict) {
	if target == p.on {
		panic("reporter exploded")
	}
}

// --- tests ---

func TestRunner_RecordsEveryTarget(t *testing.T) {
	targets := make([]string, 25)
	for i := range targets {
		targets[i] = fmt.Sprintf("host-%02d.example.com", i)
	}
	cls := &fakeClassifier{verdicts: map[string]domain.Verdict{
		"host-03.example.com": domain.Inactive,
		"host-17.example.com": domain.Inactive,
	}}
	rec := &fakeRecorder{}

	r := NewRunner(nil, cls, rec, nopReporter{}, 4, false)
	sum := r.Run(context.Background(), targets)

	if sum.Targets != 25 || sum.Active != 23 || sum.Inactive != 2 || sum.Failed != 0 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.recs) != 25 {
		t.Fatalf("want 25 recorded targets, got %d", len(rec.recs))
	}
	if rec.recs["host-03.example.com"] != domain.Inactive {
		t.Fatalf("host-03 verdict wrong: %v", rec.recs["host-03.example.com"])
	}
}

func TestRunner_HonorsConcurrencyCeiling(t *testing.T) {
	targets := make([]string, 40)
	for i := range targets {
		targets[i] = fmt.Sprintf("host-%02d.example.com", i)
	}
	cls := &fakeClassifier{delay: 10 * time.Millisecond}

	r := NewRunner(nil, cls, &fakeRecorder{}, nopReporter{}, 5, false)
	r.Run(context.Background(), targets)

	if got := cls.max.Load(); got > 5 {
		t.Fatalf("concurrency ceiling broken: saw %d simultaneous probes", got)
	}
	if got := cls.max.Load(); got < 2 {
		t.Fatalf("expected some parallelism, saw %d", got)
	}
}

func TestRunner_PanicIsolatedToItsTarget(t *testing.T) {
	targets := []string{"ok-1.example", "boom.example", "ok-2.example"}
	cls := &fakeClassifier{panicOn: "boom.example"}
	rec := &fakeRecorder{}

	r := NewRunner(nil, cls, rec, nopReporter{}, 2, false)
	sum := r.Run(context.Background(), targets)

	if sum.Failed != 1 {
		t.Fatalf("want 1 failed workflow, got %+v", sum)
	}
	if sum.Active != 2 {
		t.Fatalf("want 2 active, got %+v", sum)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if _, ok := rec.recs["boom.example"]; ok {
		t.Fatal("panicked target must not be recorded")
	}
	if len(rec.recs) != 2 {
		t.Fatalf("want 2 recorded targets, got %d", len(rec.recs))
	}
}

func TestRunner_ReporterPanicCountsTargetOnce(t *testing.T) {
	targets := []string{"fine.example", "loud.example"}
	rec := &fakeRecorder{}

	r := NewRunner(nil, &fakeClassifier{}, rec, panicReporter{on: "loud.example"}, 2, false)
	sum := r.Run(context.Background(), targets)

	if got := sum.Active + sum.Inactive + sum.Failed; got != sum.Targets {
		t.Fatalf("counters add up to %d for %d targets: %+v", got, sum.Targets, sum)
	}
	if sum.Failed != 1 || sum.Active != 1 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if _, ok := rec.recs["loud.example"]; !ok {
		t.Fatal("record landed before the reporter panicked and must stand")
	}
}

func TestRunner_RecordFailureCountsAsFailed(t *testing.T) {
	targets := []string{"fine.example", "cursed.example"}
	rec := &fakeRecorder{errOn: "cursed.example"}

	r := NewRunner(nil, &fakeClassifier{}, rec, nopReporter{}, 2, false)
	sum := r.Run(context.Background(), targets)

	if sum.Failed != 1 || sum.Active != 1 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
}

func TestRunner_NoTargets(t *testing.T) {
	r := NewRunner(nil, &fakeClassifier{}, &fakeRecorder{}, nopReporter{}, 3, false)
	sum := r.Run(context.Background(), nil)
	if sum.Targets != 0 || sum.Active != 0 || sum.Inactive != 0 || sum.Failed != 0 {
		t.Fatalf("want empty summary, got %+v", sum)
	}
}

// --- end to end against the real cascade and sink ---

type scriptedHTTP struct {
	results map[string]probe.HTTPResult
}

func (s *scriptedHTTP) Probe(ctx context.Context, url string) probe.HTTPResult {
	return s.results[url]
}

type scriptedHost struct {
	fail map[string]error
}

func (s *scriptedHost) Probe(ctx context.Context, host string) error {
	return s.fail[host]
}

func TestRunner_PartitionsTargetsIntoFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")

	targets := []string{
		"alive.example",   // HTTP 200
		"gone.example",    // 404, DNS fails
		"parked.example",  // no HTTP, resolves, no registration
		"silent.example",  // no HTTP, resolves, registered
	}

	http := &scriptedHTTP{results: map[string]probe.HTTPResult{
		"http://alive.example": {StatusCode: 200, Class: probe.ClassActive, Alive: true},
		"http://gone.example":  {StatusCode: 404, Class: probe.ClassInactive},
	}}
	dns := &scriptedHost{fail: map[string]error{
		"gone.example": &probe.ResolutionError{Host: "gone.example"},
	}}
	whois := &scriptedHost{fail: map[string]error{
		"parked.example": &probe.RegistrationError{Host: "parked.example", Reason: "empty response"},
	}}

	sink, err := output.New(base, domain.FilterNone)
	if err != nil {
		t.Fatalf("output.New: %v", err)
	}
	cls := classify.New(http, dns, whois, nil)

	r := NewRunner(nil, cls, sink, nopReporter{}, 3, false)
	sum := r.Run(context.Background(), targets)
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if sum.Active != 2 || sum.Inactive != 2 || sum.Failed != 0 {
		t.Fatalf("summary mismatch: %+v", sum)
	}

	activeLines := readFileLines(t, base+"_ACTIVE.txt")
	inactiveLines := readFileLines(t, base+"_INACTIVE.txt")
	wantActive := map[string]bool{"alive.example": true, "silent.example": true}
	wantInactive := map[string]bool{"gone.example": true, "parked.example": true}

	if len(activeLines) != 2 || len(inactiveLines) != 2 {
		t.Fatalf("line counts wrong: active=%v inactive=%v", activeLines, inactiveLines)
	}
	for _, l := range activeLines {
		if !wantActive[l] {
			t.Fatalf("unexpected active line %q", l)
		}
	}
	for _, l := range inactiveLines {
		if !wantInactive[l] {
			t.Fatalf("unexpected inactive line %q", l)
		}
	}
}

func readFileLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}
