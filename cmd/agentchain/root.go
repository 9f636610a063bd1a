package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/agentchain/internal/config"
	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/dusk-indust/agentchain/internal/metrics"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Global flags shared by every subcommand.
type globalFlags struct {
	ConfigDir   string
	EnvFile     string
	Provider    string
	MetricsFile string
	Verbose     bool
	NoColor     bool
}

// app is the resolved runtime state handed to subcommands.
type app struct {
	log         zerolog.Logger
	settings    llm.Settings
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	metricsFile string
	stdout      io.Writer
	stderr      io.Writer
}

// router builds a Router over the resolved settings.
func (a *app) router() *llm.Router {
	return llm.NewRouter(a.settings,
		llm.WithLogger(a.log),
		llm.WithObserver(a.metrics),
	)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags globalFlags
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "agentchain",
		Short: "Route prompts across LLM providers and run plan/execute/synthesize chains",
		Long: `agentchain sends prompts to the first available text-generation provider:
Groq when GROQ_API_KEY is set, Hugging Face when HF_TOKEN is set, and a local
Ollama server as the final fallback. PROVIDER=groq|hf|ollama forces one.

On top of the router it runs a three-phase chain: a goal is broken into
subtasks, each subtask is answered in order, and the answers are merged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(flags)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigDir, "config-dir", ".", "directory holding agentchain.yml and credentials.toml")
	pf.StringVar(&flags.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.StringVar(&flags.Provider, "provider", "", "force a single provider (groq, hf, ollama)")
	pf.StringVar(&flags.MetricsFile, "metrics-file", "", "write provider and run metrics to this file after run or ask")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newAskCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No configuration is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agentchain %s\n", version)
		},
	})

	return root
}

// setup loads configuration in precedence order and builds the logger and
// metrics shared by subcommands.
func (a *app) setup(flags globalFlags) error {
	if flags.NoColor {
		color.NoColor = true
	}

	level := zerolog.InfoLevel
	if flags.Verbose {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{
		Out:        a.stderr,
		NoColor:    color.NoColor,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()

	if err := config.LoadEnvFile(flags.EnvFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	project, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if project.Verbose && !flags.Verbose {
		a.log = a.log.Level(zerolog.DebugLevel)
	}

	creds, credPath, err := config.LoadCredentials(config.CredentialPaths(flags.ConfigDir))
	if err != nil {
		return fmt.Errorf("load credentials %s: %w", credPath, err)
	}
	if credPath != "" {
		a.log.Debug().Str("path", credPath).Msg("loaded credentials")
	}

	a.settings = config.Resolve(config.Source{Project: project, Credentials: creds}, a.log)
	if flags.Provider != "" {
		id, err := llm.ParseIdentity(flags.Provider)
		if err != nil {
			return err
		}
		a.settings.Forced = id
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	a.metricsFile = flags.MetricsFile
	return nil
}

// writeMetrics dumps the registry to --metrics-file, if one was given.
func (a *app) writeMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	if err := metrics.WriteFile(a.metricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
