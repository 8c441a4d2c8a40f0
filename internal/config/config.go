// Package config handles termtutor configuration using Viper.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/felixgeelhaar/termtutor/internal/errors"
)

// DefaultWorkspaceName is the directory created under the invocation
// directory when no workspace is configured.
const DefaultWorkspaceName = "termtutor-workspace"

// DefaultProgressFile is the progress record name, stored beside the catalog.
const DefaultProgressFile = "progress.json"

// Config holds the application configuration.
type Config struct {
	// Catalog is the path of a YAML or JSON task catalog. Empty selects the
	// built-in course.
	Catalog string `mapstructure:"catalog"`

	// Workspace is the directory the lesson commands run in.
	Workspace string `mapstructure:"workspace"`

	// ProgressFile overrides the progress record location.
	ProgressFile string `mapstructure:"progress_file"`

	// Shell runs every command as `<shell> -c <command>`.
	Shell string `mapstructure:"shell"`

	// Hints prints the keyword cheat sheet under every prompt.
	Hints bool `mapstructure:"hints"`

	Log     LogConfig     `mapstructure:"log"`
	Display DisplayConfig `mapstructure:"display"`
}

// LogConfig holds diagnostic logging options.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DisplayConfig holds display-related configuration.
type DisplayConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from defaults, an optional config file and
// TERMTUTOR_* environment variables. A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	return LoadWith(v, configPath)
}

// LoadWith is Load on a caller-supplied viper instance, so commands can bind
// their flags before the configuration is decoded.
func LoadWith(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".termtutor"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("TERMTUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrCodeConfigRead, "cannot read config file", err).
				WithSuggestion("Check the YAML syntax of your config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigDecode, "cannot decode configuration", err)
	}

	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.Workspace = expandHome(cfg.Workspace)
	cfg.ProgressFile = expandHome(cfg.ProgressFile)

	return &cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog", "")
	v.SetDefault("workspace", DefaultWorkspaceName)
	v.SetDefault("progress_file", "")
	v.SetDefault("shell", "/bin/sh")
	v.SetDefault("hints", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("display.colors", true)
}

// ProgressPath resolves where the progress record lives: the configured
// path, or beside the catalog, or in baseDir for the built-in catalog.
func (c *Config) ProgressPath(baseDir string) string {
	if c.ProgressFile != "" {
		return absFrom(baseDir, c.ProgressFile)
	}
	if c.Catalog != "" {
		return filepath.Join(filepath.Dir(absFrom(baseDir, c.Catalog)), DefaultProgressFile)
	}
	return filepath.Join(baseDir, DefaultProgressFile)
}

// WorkspacePath resolves the workspace directory against baseDir.
func (c *Config) WorkspacePath(baseDir string) string {
	ws := c.Workspace
	if ws == "" {
		ws = DefaultWorkspaceName
	}
	return absFrom(baseDir, ws)
}

func absFrom(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
