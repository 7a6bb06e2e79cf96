package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/crux/internal/compiler"
	"github.com/arnavsurve/crux/internal/config"
	"github.com/arnavsurve/crux/internal/logging"
)

// app carries what the persistent flags and config file resolve to.
type app struct {
	cfgFile  string
	logLevel string
	color    string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "crux",
		Short: "Crux front end: scanner, parser and name resolution",
		Long: `crux checks Crux programs for syntax and naming errors.

Commands:
  check   Scan, parse and resolve names in one or more (.crx) sources
  tokens  Dump the token stream of a source file
  first   Print the FIRST-set table of the grammar
  init    Scaffold a starter program and crux.toml
`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: crux.toml, crux.yaml or crux.yml in the working directory)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.color, "color", "", "colour output: auto, always or never")

	root.AddCommand(
		newCheckCmd(a),
		newTokensCmd(a),
		newFirstCmd(),
		newInitCmd(a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the config file, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.cfgFile
	if path == "" {
		if found, ok := config.Discover("."); ok {
			path = found
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewText(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if path != "" {
		logger.Debug("loaded config", slog.String("path", path))
	}
	return nil
}

func (a *app) options() compiler.Options {
	return compiler.Options{Extension: a.cfg.Extension, Logger: a.logger}
}

// output returns the writer for command results. The real stdout is wrapped
// so ANSI sequences also render on Windows consoles.
func (a *app) output(cmd *cobra.Command) io.Writer {
	w := cmd.OutOrStdout()
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return colorable.NewColorableStdout()
	}
	return w
}

// colorEnabled resolves the color setting against the command's stdout.
func (a *app) colorEnabled(cmd *cobra.Command) bool {
	switch a.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
