package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/citygen/internal/config"
)

// errInvalid signals that a report has already been printed and the
// process should exit non-zero without repeating it.
var errInvalid = errors.New("invalid configuration")

type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *slog.Logger
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "citygen",
		Short:         "Procedural city layout generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "citygen.toml", "Path to runtime configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(a.generateCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.defaultsCmd())
	rootCmd.AddCommand(a.serveCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	a.cfg = cfg
	a.log = cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(a.log)
	return nil
}

func (a *app) generateCmd() *cobra.Command {
	var (
		flags configFlags
		opts  generateOptions
	)

	cmd := &cobra.Command{
		Use:   "generate [spec-file]",
		Short: "Generate a city and print its statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return a.runGenerate(cmd, cfg, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&opts.exports, "export", nil, "Export to file; format from extension (.json .obj .png .geojson .msgpack). Repeatable")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "Write a PNG preview to this path")
	cmd.Flags().IntVar(&opts.previewSize, "preview-size", 0, "Preview size in pixels (default from runtime config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the city model as JSON instead of the statistics table")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var (
		flags configFlags
		deep  bool
	)

	cmd := &cobra.Command{
		Use:   "validate [spec-file]",
		Short: "Validate a generation config without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return a.runValidate(cmd, cfg, deep)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&deep, "deep", false, "Also generate the city and check its spatial consistency")
	return cmd
}

func (a *app) defaultsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default generation config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDefaults(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml, toml or json")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides config)")
	return cmd
}
