// armnn2perfetto converts an ArmNN profiler JSON dump into a Perfetto trace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/armnn2perfetto/internal/config"
	"github.com/crimson-sun/armnn2perfetto/internal/logging"
	"github.com/crimson-sun/armnn2perfetto/internal/output"
	"github.com/crimson-sun/armnn2perfetto/internal/output/file"
	"github.com/crimson-sun/armnn2perfetto/internal/output/stdout"
	"github.com/crimson-sun/armnn2perfetto/internal/pipeline"
	filesrc "github.com/crimson-sun/armnn2perfetto/internal/source/file"
)

// stdoutPath selects standard output as the trace destination.
const stdoutPath = "-"

var opts struct {
	configPath   string
	input        string
	output       string
	flows        bool
	beginEnd     bool
	pretty       bool
	strictTiming bool
	logLevel     string
	logFormat    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "armnn2perfetto: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armnn2perfetto -i out.json -o perfetto_trace.json",
		Short: "Convert an ArmNN profiler dump into a Perfetto trace",
		Long: `armnn2perfetto reads the JSON written by ArmNN's profiler and writes a
Chrome JSON trace for ui.perfetto.dev.

Framework wall-clock spans land on track 0, GEMM kernels on track 1 and
other OpenCL kernels on track 2.

Examples:
  armnn2perfetto -i out.json -o perfetto_trace.json
  armnn2perfetto -i out.json -o trace.json.gz --flows
  adb shell cat /data/local/tmp/out.json | armnn2perfetto -i - -o -`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "ArmNN profiler JSON (\"-\" for stdin)")
	f.StringVarP(&opts.output, "output", "o", "", "trace file to write (\"-\" for stdout, \".gz\" to compress)")
	f.BoolVar(&opts.flows, "flows", false, "draw flow arrows from framework spans to kernels")
	f.BoolVar(&opts.beginEnd, "begin-end", false, "write B/E event pairs instead of X events")
	f.BoolVar(&opts.pretty, "pretty", true, "indent the JSON output")
	f.BoolVar(&opts.strictTiming, "strict-timing", false, "fail on events with negative duration")
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "text", "text or json")
	return cmd
}

// loadConfig layers flags explicitly set on the command line over the
// file and environment configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Input = opts.input
	}
	if f.Changed("output") {
		cfg.Output = opts.output
	}
	if f.Changed("flows") {
		cfg.Flows = opts.flows
	}
	if f.Changed("begin-end") {
		cfg.BeginEnd = opts.beginEnd
	}
	if f.Changed("pretty") {
		cfg.Pretty = opts.pretty
	}
	if f.Changed("strict-timing") {
		cfg.StrictTiming = opts.strictTiming
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}

	if cfg.Input == "" {
		return config.Config{}, fmt.Errorf("no input: pass --input or set %s_INPUT", config.EnvPrefix)
	}
	if cfg.Output == "" {
		return config.Config{}, fmt.Errorf("no output: pass --output or set %s_OUTPUT", config.EnvPrefix)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	toStdout := cfg.Output == stdoutPath
	logging.Init(cfg.LogFormat, logging.ParseLevel(cfg.LogLevel), toStdout)

	var out output.Output
	if toStdout {
		out = stdout.New(cfg.Pretty)
	} else {
		out = file.New(cfg.Output, file.WithPretty(cfg.Pretty))
	}

	_, err := pipeline.FromConfig(cfg).Run(ctx, filesrc.New(cfg.Input), out)
	return err
}
