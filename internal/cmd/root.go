// Package cmd wires the promptplay command tree: global flags, logging,
// metrics and tracing setup, and one subcommand per workflow.
package cmd

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/log"
	"github.com/felixgeelhaar/promptplay/internal/metrics"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/provider"
	"github.com/felixgeelhaar/promptplay/internal/render"
	"github.com/felixgeelhaar/promptplay/internal/runner"
	"github.com/felixgeelhaar/promptplay/internal/telemetry"
	"github.com/felixgeelhaar/promptplay/internal/tui"
	"github.com/felixgeelhaar/promptplay/internal/version"
)

const (
	// DefaultConfigFile is read when --config is not given and the file exists.
	DefaultConfigFile = "promptplay.yaml"

	// DefaultTimeout bounds a single chat call.
	DefaultTimeout = 2 * time.Minute

	dotEnvFile = ".env"
)

type globalOptions struct {
	provider      string
	configPath    string
	promptsDir    string
	timeout       time.Duration
	logLevel      string
	logFormat     string
	metricsFile   string
	traceEndpoint string
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	opts     globalOptions
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	shutdown func(context.Context) error
}

// ExecuteContext runs the command tree with ctx and flushes metrics and
// traces before returning.
func ExecuteContext(ctx context.Context) error {
	a := &app{}
	return a.execute(ctx, newRootCmd(a))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "promptplay",
		Short: "Prompt playground for structured LLM outputs",
		Long: `promptplay drives a chat model through prompt templates whose replies must
carry a JSON document. Each reply is extracted, validated against its
schema, rendered and saved.

Workflows:
  brainstorm   refine an idea through guided multiple-choice questions
  score        rate an issue description for development readiness
  decompose    break a goal into stories, tasks and an execution plan
  dispatch     assign a role and autonomy level to decomposed tasks`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.provider, "provider", "", "LLM provider to use (openai, gemini)")
	f.StringVar(&a.opts.configPath, "config", "", "provider config file (default "+DefaultConfigFile+" if present)")
	f.StringVar(&a.opts.promptsDir, "prompts-dir", "", "directory overriding built-in templates (default $"+prompt.DirEnv+" or "+prompt.DefaultDir+")")
	f.DurationVar(&a.opts.timeout, "timeout", DefaultTimeout, "limit for a single chat call (0 disables)")
	f.StringVar(&a.opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.StringVar(&a.opts.logFormat, "log-format", "text", "log format (text, json)")
	f.StringVar(&a.opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	f.StringVar(&a.opts.traceEndpoint, "trace-endpoint", "", "OTLP/HTTP endpoint for traces (default $OTEL_EXPORTER_OTLP_ENDPOINT)")

	root.AddCommand(
		newBrainstormCmd(a),
		newScoreCmd(a),
		newDecomposeCmd(a),
		newDispatchCmd(a),
		newPromptsCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envErr := loadDotEnv(dotEnvFile)

	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(a.opts.logLevel)
	cfg.Format = log.ParseFormat(a.opts.logFormat)
	cfg.Output = cmd.ErrOrStderr()
	cfg.ServiceVersion = version.Version
	a.logger = log.New(cfg)
	log.SetDefaultLogger(a.logger)

	if envErr != nil {
		a.logger.WithError(envErr).Warn("could not load .env")
	}

	a.registry, a.metrics = metrics.NewRegistry()

	shutdown, err := telemetry.InitProvider(cmd.Context(), telemetry.ConfigFor(a.opts.traceEndpoint, version.Version))
	if err != nil {
		a.logger.WithError(err).Warn("tracing disabled")
		return nil
	}
	a.shutdown = shutdown
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.log().WithError(err).Warn("failed to flush traces")
		}
	}
	if a.opts.metricsFile != "" && a.registry != nil {
		if err := metrics.WriteFile(a.registry, a.opts.metricsFile); err != nil {
			return errors.NewFileWriteError(a.opts.metricsFile, err)
		}
	}
	return nil
}

func (a *app) log() *log.Logger {
	if a.logger == nil {
		return log.DefaultLogger()
	}
	return a.logger
}

// action wraps a subcommand body with a command span and metrics. A reply
// the runner rejected has already been reported and ends the command
// without an error.
func (a *app) action(name string, fn func(ctx context.Context, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, span := telemetry.StartCommandSpan(cmd.Context(), name)
		defer span.End()

		start := time.Now()
		err := fn(ctx, cmd)
		a.metrics.RecordCommand(name, err == nil, time.Since(start))

		if err != nil {
			telemetry.RecordError(span, err)
			if stderrors.Is(err, runner.ErrRejected) {
				return nil
			}
			return err
		}
		telemetry.RecordSuccess(span)
		return nil
	}
}

// openClient resolves the backend and wraps it with the middleware stack.
func (a *app) openClient(ctx context.Context, cmd *cobra.Command) (provider.ChatClient, error) {
	cfg, err := a.providersConfig()
	if err != nil {
		return nil, err
	}

	client, settings, err := provider.NewResolver(cfg).Open(ctx, a.opts.provider)
	if err != nil {
		return nil, err
	}
	a.logger.Info("provider selected", "provider", settings.Name, "model", settings.Model)

	spinner := tui.NewSpinner(cmd.ErrOrStderr(), animate(cmd.ErrOrStderr()))
	return provider.Wrap(client,
		spinner.Middleware(),
		provider.WithTracing(),
		provider.WithLogging(a.logger),
		provider.WithMetrics(a.metrics),
		provider.WithTimeout(a.timeout(cmd, cfg)),
	), nil
}

func (a *app) providersConfig() (*provider.ProvidersConfig, error) {
	path := a.opts.configPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return nil, nil
		}
		path = DefaultConfigFile
	}

	cfg, err := provider.LoadProvidersConfig(path)
	if err != nil {
		return nil, errors.NewProviderConfigError(path, err)
	}
	a.logger.Debug("provider config loaded", "path", path)
	return cfg, nil
}

// timeout prefers an explicit --timeout, then the config file's strategy.
func (a *app) timeout(cmd *cobra.Command, cfg *provider.ProvidersConfig) time.Duration {
	if cmd.Flags().Changed("timeout") || cfg == nil || cfg.Strategy.Timeout == 0 {
		return a.opts.timeout
	}
	return cfg.Strategy.Timeout
}

func (a *app) templates() (*prompt.Store, error) {
	dir := a.opts.promptsDir
	if dir == "" {
		dir = os.Getenv(prompt.DirEnv)
	}
	if dir == "" {
		dir = prompt.DefaultDir
	}
	return prompt.NewStore(dir, prompt.WithLogger(a.logger))
}

// deps assembles what a single-turn runner needs.
func (a *app) deps(ctx context.Context, cmd *cobra.Command) (runner.Deps, error) {
	client, err := a.openClient(ctx, cmd)
	if err != nil {
		return runner.Deps{}, err
	}
	store, err := a.templates()
	if err != nil {
		return runner.Deps{}, err
	}
	return runner.Deps{
		Client:    client,
		Templates: store,
		Presenter: render.New(cmd.OutOrStdout()),
		Logger:    a.logger,
		Metrics:   a.metrics,
	}, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func animate(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.ShouldAnimate(f)
}
