package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/bluebook/internal/config"
	"github.com/dshills/bluebook/internal/engine"
	"github.com/dshills/bluebook/internal/logging"
	"github.com/dshills/bluebook/internal/tracing"
)

// envPrefix prefixes environment overrides, as in BLUEBOOK_ENGINE_BACKEND.
const envPrefix = "BLUEBOOK"

// app holds state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *logging.Logger
	tp      *tracing.Provider
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "bluebook",
		Short: "Inspect and edit rich-text documents",
		Long: `bluebook drives the rich-text document engine from the command line:
walk text boundaries, convert positions, and replay edit scripts.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (.toml, .yaml or .yml)")
	flags.String("backend", "", "buffer backend (string, rope, sequence)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("trace", false, "print transaction traces to stderr")
	_ = a.v.BindPFlag("engine.backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("tracing.enabled", flags.Lookup("trace"))

	root.AddCommand(
		newSegmentCmd(a),
		newPositionCmd(a),
		newApplyCmd(a),
	)
	return root
}

// setup resolves the configuration from defaults, the config file,
// BLUEBOOK_* environment variables and flags, in increasing priority.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	base := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		base = loaded
	}
	setDefaults(a.v, base)

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = logging.New(logging.Config{
		Level:  a.cfg.Log.LogLevel(),
		Output: cmd.ErrOrStderr(),
		Prefix: "bluebook",
	})

	tcfg := a.cfg.Tracing
	if tcfg.Enabled && tcfg.Exporter == "" {
		tcfg.Exporter = "stdout"
	}
	tp, err := tracing.NewProvider(tcfg, tracing.WithWriter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	a.tp = tp
	a.logger.Debug("config resolved, backend %s", a.cfg.Engine.Backend)
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.tp == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.tp.Shutdown(ctx)
}

// newDocument creates a document over text using the resolved config.
func (a *app) newDocument(text string) (*engine.Document, error) {
	return engine.FromConfig(a.cfg,
		engine.WithContent(text),
		engine.WithLogger(a.logger),
		engine.WithTracer(a.tp.Tracer()),
	)
}

func setDefaults(v *viper.Viper, c config.Config) {
	v.SetDefault("engine.backend", c.Engine.Backend)
	v.SetDefault("engine.drift", c.Engine.Drift)
	v.SetDefault("engine.line_ending", c.Engine.LineEnding)
	v.SetDefault("engine.normalization", c.Engine.Normalization)
	v.SetDefault("engine.max_undo_entries", c.Engine.MaxUndoEntries)
	v.SetDefault("engine.max_changes", c.Engine.MaxChanges)
	v.SetDefault("engine.max_pre_context", c.Engine.MaxPreContext)
	v.SetDefault("engine.segment_cache_ttl", c.Engine.SegmentCacheTTL)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("tracing.enabled", c.Tracing.Enabled)
	v.SetDefault("tracing.exporter", c.Tracing.Exporter)
	v.SetDefault("tracing.endpoint", c.Tracing.Endpoint)
	v.SetDefault("tracing.sample_rate", c.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", c.Tracing.ServiceName)
}

// readInput returns the contents of the named file, or stdin when the
// name is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
