package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadTargets loads one target per line from path. Lines are trimmed of
// surrounding whitespace and blank lines are skipped; the trimmed text
// is what gets probed and what the output files echo back.
func ReadTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var targets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return targets, nil
}
