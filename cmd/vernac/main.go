// Package main implements the vernac CLI: a thin cobra wrapper over
// internal/engine. The CLI launcher and the document's block-level
// lexer/parser are themselves out of scope for the core (§1); this
// file exists so the engine is reachable from a terminal and so the
// domain stack's cobra dependency has a concrete, exercised home —
// mirroring cmd/nerd/main.go's rootCmd + PersistentFlags()/init()
// registration idiom.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vernac/internal/cache"
	vconfig "vernac/internal/config"
	"vernac/internal/docloader"
	"vernac/internal/engine"
	"vernac/internal/logging"
	"vernac/internal/prover"
	"vernac/internal/prover/dummy"
	"vernac/internal/prover/eprover"
	"vernac/internal/prover/smt"
	"vernac/internal/prover/vampire"
	"vernac/internal/report"
)

var (
	verbose       bool
	configPath    string
	noCache       bool
	benchmark     bool
	proverName    string
	timeLimitSecs int
	workers       int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vernac",
	Short: "Vernac Core - controlled-language proof checker",
	Long: `Vernac Core translates a controlled natural-language mathematical
vernacular into first-order logic, dispatches proof obligations to
external ATPs, and reports verification results.`,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a vernacular source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the proof cache entirely")
	checkCmd.Flags().BoolVar(&benchmark, "benchmark", false, "run every registered prover per obligation and report timings")
	checkCmd.Flags().StringVar(&proverName, "prover", "", "override the default prover")
	checkCmd.Flags().IntVar(&timeLimitSecs, "timelimit", 0, "override the per-obligation time budget in seconds")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "override the worker pool size (0 = host parallelism)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = logging.New(verbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	cfg := vconfig.DefaultConfig()
	if configPath != "" {
		cfg, err = vconfig.Load(configPath)
		if err != nil {
			return err
		}
	}
	applyFlagOverrides(cfg)

	provers, err := buildProvers(cfg)
	if err != nil {
		return err
	}

	var c *cache.Cache
	if !cfg.NoCache {
		c, err = cache.Open(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()
	}

	e := engine.New(engine.Config{
		BaseDir:       cfg.BaseDir,
		Cache:         c,
		Reporter:      report.NewConsoleReporter(os.Stdout),
		Provers:       provers,
		DefaultProver: cfg.DefaultProver,
		TimeLimit:     time.Duration(cfg.TimeLimitSecs) * time.Second,
		Workers:       cfg.Workers,
		Benchmark:     cfg.Benchmark,
		Loader:        docloader.New(),
	})

	nodes, err := docloader.New().Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	e.Run(nodes)
	return nil
}

func applyFlagOverrides(cfg *vconfig.Config) {
	if noCache {
		cfg.NoCache = true
	}
	if benchmark {
		cfg.Benchmark = true
	}
	if proverName != "" {
		cfg.DefaultProver = proverName
	}
	if timeLimitSecs > 0 {
		cfg.TimeLimitSecs = timeLimitSecs
	}
	if workers > 0 {
		cfg.Workers = workers
	}
}

func buildProvers(cfg *vconfig.Config) (map[string]prover.Prover, error) {
	out := make(map[string]prover.Prover, len(cfg.Provers))
	for _, pc := range cfg.Provers {
		switch pc.Name {
		case "dummy":
			out["dummy"] = dummy.New()
		case "eprover":
			out["eprover"] = eprover.New(pc.BinaryPath)
		case "vampire":
			out["vampire"] = vampire.New(pc.BinaryPath)
		case "smt":
			out["smt"] = smt.New(pc.BinaryPath)
		default:
			return nil, fmt.Errorf("unknown prover in config: %s", pc.Name)
		}
	}
	if _, ok := out[cfg.DefaultProver]; !ok {
		return nil, fmt.Errorf("default prover %q is not registered", cfg.DefaultProver)
	}
	return out, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
