package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/zanderlewis/reachable/internal/domain"
)

type Config struct {
	InputFile   string // one target per line
	OutputBase  string // results go to {OutputBase}_ACTIVE.txt / _INACTIVE.txt
	Exclude     string // raw flag value; Validate parses it into Filter
	Concurrency int    // max targets probed at once
	Verbose     int    // 0 silent, 1 verdicts, 2 probe detail

	HTTPTimeout  time.Duration
	DNSTimeout   time.Duration
	WhoisTimeout time.Duration

	LogDir  string // when set, a rotating JSON debug log is written here
	NoColor bool

	Filter domain.Filter // derived by Validate
}

// Default returns the baseline run configuration.
func Default() Config {
	return Config{
		Concurrency:  10,
		Verbose:      1,
		HTTPTimeout:  5 * time.Second,
		DNSTimeout:   3 * time.Second,
		WhoisTimeout: 10 * time.Second,
	}
}

// Validate checks and normalizes the configuration so that nothing
// misconfigured survives past startup. Non-positive timeouts fall back
// to the defaults rather than failing the run.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return errors.New("input file is required")
	}
	if c.OutputBase == "" {
		return errors.New("output base path is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Verbose < 0 {
		return fmt.Errorf("verbose level must not be negative, got %d", c.Verbose)
	}

	f, err := domain.ParseFilter(c.Exclude)
	if err != nil {
		return err
	}
	c.Filter = f

	d := Default()
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = d.HTTPTimeout
	}
	if c.DNSTimeout <= 0 {
		c.DNSTimeout = d.DNSTimeout
	}
	if c.WhoisTimeout <= 0 {
		c.WhoisTimeout = d.WhoisTimeout
	}
	return nil
}
