package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zanderlewis/reachable/internal/classify"
	"github.com/zanderlewis/reachable/internal/config"
	"github.com/zanderlewis/reachable/internal/console"
	"github.com/zanderlewis/reachable/internal/domain"
	"github.com/zanderlewis/reachable/internal/input"
	"github.com/zanderlewis/reachable/internal/logging"
	"github.com/zanderlewis/reachable/internal/output"
	"github.com/zanderlewis/reachable/internal/probe"
	"github.com/zanderlewis/reachable/internal/runner"
)

const version = "1.1.0"

func main() {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "reachable",
		Short: "Classify domains and URLs as ACTIVE or INACTIVE",
		Long: `reachable reads targets from a file, probes each one over HTTP with
DNS and WHOIS fallbacks, and splits the input lines into
{output}_ACTIVE.txt and {output}_INACTIVE.txt.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&cfg.InputFile, "input", "i", "", "file with one domain or URL per line")
	fl.StringVarP(&cfg.OutputBase, "output", "o", "", "base path for the _ACTIVE.txt and _INACTIVE.txt result files")
	fl.StringVarP(&cfg.Exclude, "exclude", "e", "", "verdict to drop from the output files (ACTIVE or INACTIVE)")
	fl.IntVarP(&cfg.Concurrency, "concurrency", "c", cfg.Concurrency, "maximum number of targets probed at once")
	fl.IntVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "console verbosity: 0 progress bar only, 1 verdicts, 2 probe detail")
	fl.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP probe timeout per target")
	fl.DurationVar(&cfg.DNSTimeout, "dns-timeout", cfg.DNSTimeout, "DNS lookup timeout per target")
	fl.DurationVar(&cfg.WhoisTimeout, "whois-timeout", cfg.WhoisTimeout, "WHOIS query timeout per target")
	fl.StringVar(&cfg.LogDir, "log-dir", "", "write a rotating JSON debug log into this directory")
	fl.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	_ = root.MarkFlagRequired("input")
	_ = root.MarkFlagRequired("output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reachable:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	sink, err := output.New(cfg.OutputBase, cfg.Filter)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("sink_close_error", zap.Error(cerr))
		}
	}()

	targets, err := input.ReadTargets(cfg.InputFile)
	if err != nil {
		return err
	}

	classifier := classify.New(
		probe.NewHTTPProber(cfg.HTTPTimeout, logger),
		probe.NewDNSProber(cfg.DNSTimeout, logger),
		probe.NewWhoisProber(cfg.WhoisTimeout, logger),
		logger,
	)
	cons := console.New(cfg.Verbose, cfg.NoColor)

	logger.Info("run_start",
		zap.String("input", cfg.InputFile),
		zap.String("active_file", sink.Path(domain.Active)),
		zap.String("inactive_file", sink.Path(domain.Inactive)),
		zap.Int("targets", len(targets)),
		zap.Int("concurrency", cfg.Concurrency),
	)

	r := runner.NewRunner(logger, classifier, sink, cons, cfg.Concurrency, cfg.Verbose == 0)
	sum := r.Run(context.Background(), targets)

	cons.Done(sum.Targets, sum.Active, sum.Inactive, sum.Failed, sum.Elapsed)
	return nil
}
