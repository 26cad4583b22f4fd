package cli

import (
	"io"

	"github.com/code19m/errx"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/rise-and-shine/pipeline/meta"
	"github.com/rise-and-shine/pipeline/observability/logger"
	"github.com/rise-and-shine/pipeline/observability/tracing"
	"github.com/rise-and-shine/pipeline/pipeline"
	"github.com/rise-and-shine/pipeline/pipeline/wrapper"
)

const outStderr = "stderr"

type runOptions struct {
	only        []string
	dumpMetrics bool
}

// NewRootCommand builds the command tree. Running the root command without a
// subcommand is the same as "run".
func NewRootCommand(load LoadFunc) *cobra.Command {
	var env string

	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Invoke handlers through marker-printing pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarios(cmd, load, env, runOptions{})
		},
	}
	root.PersistentFlags().StringVar(&env, "env", "", "config environment, overrides ENVIRONMENT")

	root.AddCommand(newRunCommand(load, &env), newListCommand())
	return root
}

func newRunCommand(load LoadFunc, env *string) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scenarios in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarios(cmd, load, *env, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "run only the named scenarios")
	cmd.Flags().BoolVar(&opts.dumpMetrics, "dump-metrics", false, "print collected metrics after the run")

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp(io.Discard)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Scenario", "Handler", "Kind")
			for _, s := range app.Scenarios() {
				_ = table.Append(s.Name, s.Handler, s.Kind)
			}
			return errx.Wrap(table.Render())
		},
	}
}

func runScenarios(cmd *cobra.Command, load LoadFunc, env string, opts runOptions) error {
	cfg, err := load(env)
	if err != nil {
		return errx.Wrap(err)
	}

	// The global logger is process-wide: the first run installs it and later
	// runs in the same process keep using it.
	if err := logger.SetGlobal(cfg.Logger); err != nil && errx.AsErrorX(err).Code() != logger.CodeAlreadySet {
		return errx.Wrap(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("cli")

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)

	shutdown, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		return errx.Wrap(err)
	}
	defer func() {
		if err := shutdown(); err != nil {
			log.Warnx(err)
		}
	}()

	reg := prometheus.NewRegistry()
	wrappers, err := buildWrappers(cfg, log, reg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Pipeline.Output == outStderr {
		out = cmd.ErrOrStderr()
	}

	app, err := NewApp(out, pipeline.WithWrappers(wrappers...))
	if err != nil {
		return err
	}

	log.Debugf("running scenarios for %s@%s", cfg.Service.Name, cfg.Service.Version)
	if err := app.Run(cmd.Context(), opts.only...); err != nil {
		return err
	}

	if opts.dumpMetrics {
		return dumpMetrics(cmd.OutOrStdout(), reg)
	}
	return nil
}

// buildWrappers returns the instrumentation chain, outermost first. The span
// is opened before metadata is injected so the trace id is available to it.
func buildWrappers(cfg Config, log logger.Logger, reg prometheus.Registerer) ([]pipeline.WrapFunc, error) {
	if cfg.Pipeline.DisableInstrumentation {
		return nil, nil
	}

	metrics, err := wrapper.NewMetricsWrapper(reg)
	if err != nil {
		return nil, err
	}

	return []pipeline.WrapFunc{
		wrapper.NewTracingWrapper(nil),
		wrapper.NewMetaInjectWrapper(cfg.Service.Name, cfg.Service.Version),
		wrapper.NewLoggerWrapper(log),
		metrics,
	}, nil
}

func dumpMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return errx.Wrap(err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errx.Wrap(err)
		}
	}
	return nil
}
