package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/afmlabs/evaldash/internal/logging"
	"github.com/afmlabs/evaldash/internal/metrics"
	"github.com/afmlabs/evaldash/internal/projectconfig"
)

var version = "dev"

// app carries state resolved by the root command for its subcommands.
type app struct {
	debug     bool
	logFormat string
	configDir string

	cfg    *projectconfig.ProjectConfig
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "evaldash",
		Short: "evaldash - AFM evaluation dashboard",
		Long: `evaldash serves the AFM evaluation dashboard: model win rates, rubric
scores, domain and language breakdowns, training cycles and failure trends.

The datasets are synthetic and regenerated on every request from a fixed
anchor table, so each view is plausible but never identical.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: auto, text or json")
	cmd.PersistentFlags().StringVar(&a.configDir, "config-dir", ".", "Directory to search upward for "+projectconfig.FileName)

	cmd.AddCommand(newServeCommand(a, &serveOptions{}))
	cmd.AddCommand(newGenerateCommand(a))
	cmd.AddCommand(newExportCommand(a))
	cmd.AddCommand(newTokenCommand(a))

	return cmd
}

// init loads the configuration, applies the environment and installs the
// logger. Flags win over the file.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := projectconfig.Load(a.configDir)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	a.cfg = cfg

	format := cfg.Logging.Format
	if cmd.Flags().Changed("log-format") {
		format = a.logFormat
	}
	f, err := logging.ParseFormat(format)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if a.debug || (cfg.Logging.Debug != nil && *cfg.Logging.Debug) {
		level = slog.LevelDebug
	}
	a.logger = logging.Setup(logging.Options{Format: f, Level: level, Writer: cmd.ErrOrStderr()})
	if cfg.Path != "" {
		a.logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// anchors returns the configured anchor table, or the built-in one.
func (a *app) anchors() (*metrics.Anchors, error) {
	path := a.cfg.AnchorsPath()
	if path == "" {
		return metrics.DefaultAnchors(), nil
	}
	anchors, err := metrics.LoadAnchors(path)
	if err != nil {
		return nil, fmt.Errorf("data.anchors: %w", err)
	}
	a.logger.Debug("loaded anchors", "path", path, "models", len(anchors.Models))
	return anchors, nil
}

// generator builds a generator over the configured anchors. seed overrides
// the configured seed when non-nil.
func (a *app) generator(seed *uint64) (*metrics.Generator, error) {
	anchors, err := a.anchors()
	if err != nil {
		return nil, err
	}
	opts := []metrics.Option{metrics.WithAnchors(anchors)}
	if seed == nil {
		seed = a.cfg.Data.Seed
	}
	if seed != nil {
		opts = append(opts, metrics.WithSeed(*seed))
	}
	return metrics.New(opts...), nil
}

// seedFlag returns the --seed value when it was set on cmd.
func seedFlag(cmd *cobra.Command, v uint64) *uint64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	return &v
}

func execute() error {
	return newRootCommand().Execute()
}
