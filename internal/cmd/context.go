package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/config"
	"github.com/felixgeelhaar/termtutor/internal/log"
	"github.com/felixgeelhaar/termtutor/internal/tui"
)

// flagKeys maps persistent flags to the configuration keys they override.
var flagKeys = map[string]string{
	"catalog":   "catalog",
	"workspace": "workspace",
	"log-level": "log.level",
}

// CommandContext holds everything a command resolves from flags, config
// file and environment before doing its work.
type CommandContext struct {
	Config  *config.Config
	Logger  *log.Logger
	Styles  tui.Styles
	NoColor bool

	// BaseDir anchors relative workspace and progress paths.
	BaseDir string
}

// NewCommandContext loads configuration with cmd's flags bound on top and
// installs the process-wide logger.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadWith(v, cfgFile)
	if err != nil {
		return nil, err
	}

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}
	noColor = noColor || !cfg.Display.Colors || !tui.IsColorTerminal()

	baseDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:       log.ParseLevel(cfg.Log.Level),
		Format:      log.ParseFormat(cfg.Log.Format),
		Output:      log.NewOutput(cmd.ErrOrStderr()),
		ServiceName: "termtutor",
	})
	log.SetDefaultLogger(logger)

	styles := tui.DefaultStyles()
	if noColor {
		styles = tui.PlainStyles()
	}

	return &CommandContext{
		Config:  cfg,
		Logger:  logger,
		Styles:  styles,
		NoColor: noColor,
		BaseDir: baseDir,
	}, nil
}

// LoadCatalog loads the configured catalog or the built-in one.
func (c *CommandContext) LoadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(c.Config.Catalog)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("catalog loaded", "source", cat.Source, "tasks", cat.Len(), "fingerprint", cat.Fingerprint)
	return cat, nil
}

// WorkspacePath is the absolute workspace directory.
func (c *CommandContext) WorkspacePath() string {
	return c.Config.WorkspacePath(c.BaseDir)
}

// ProgressPath is the absolute progress record path.
func (c *CommandContext) ProgressPath() string {
	return c.Config.ProgressPath(c.BaseDir)
}

// Printer returns a tutor printer on w, wrapping to the terminal width when
// colors are on.
func (c *CommandContext) Printer(w io.Writer) *tui.Printer {
	width := 0
	if !c.NoColor {
		width = tui.TerminalWidth()
	}
	return tui.NewPrinter(w, c.Styles, width)
}
