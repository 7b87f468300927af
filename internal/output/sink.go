package output

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/multierr"

	"github.com/zanderlewis/reachable/internal/domain"
)

// Sink appends classified targets to one file per verdict,
// {base}_ACTIVE.txt and {base}_INACTIVE.txt. A file is created on the
// first line written to it, so a category that never occurs (or is
// excluded) leaves no file behind. Each file has its own lock, making
// every append line-atomic under concurrent workers.
type Sink struct {
	exclude domain.Filter
	files   [2]*verdictFile
}

type verdictFile struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// New removes output files left over from a previous run against the
// same base and returns a sink ready for concurrent use.
func New(base string, exclude domain.Filter) (*Sink, error) {
	s := &Sink{exclude: exclude}
	for _, v := range []domain.Verdict{domain.Active, domain.Inactive} {
		path := fmt.Sprintf("%s_%s.txt", base, v)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale %s: %w", path, err)
		}
		s.files[v] = &verdictFile{path: path}
	}
	return s, nil
}

// Record appends the target's original input line to the file for its
// verdict. It is a no-op when the verdict matches the exclusion filter.
func (s *Sink) Record(target string, verdict domain.Verdict) error {
	if s.exclude.Excludes(verdict) {
		return nil
	}
	return s.files[verdict].append(target)
}

// Path returns the output file for a verdict.
func (s *Sink) Path(verdict domain.Verdict) string {
	return s.files[verdict].path
}

// Close closes whatever files the run actually opened.
func (s *Sink) Close() error {
	var err error
	for _, vf := range s.files {
		vf.mu.Lock()
		if vf.f != nil {
			err = multierr.Append(err, vf.f.Close())
			vf.f = nil
		}
		vf.mu.Unlock()
	}
	return err
}

func (vf *verdictFile) append(line string) error {
	vf.mu.Lock()
	defer vf.mu.Unlock()

	if vf.f == nil {
		f, err := os.OpenFile(vf.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", vf.path, err)
		}
		vf.f = f
	}
	if _, err := fmt.Fprintln(vf.f, line); err != nil {
		return fmt.Errorf("write %s: %w", vf.path, err)
	}
	return nil
}
