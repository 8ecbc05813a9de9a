package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/monopole/shbridge"
	"github.com/monopole/shbridge/channeler"
	"github.com/monopole/shbridge/internal/logging"
	"github.com/spf13/viper"
)

// Config represents the complete launcher configuration.
type Config struct {
	Shell   ShellConfig   `mapstructure:"shell" yaml:"shell"`
	Buffers BuffersConfig `mapstructure:"buffers" yaml:"buffers"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Items   []Item        `mapstructure:"items" yaml:"items"`
}

// ShellConfig says how statements are run.
type ShellConfig struct {
	// Path to the shell, looked up on PATH if not absolute.
	Path string `mapstructure:"path" yaml:"path"`
	// Args precede the joined statements, e.g. ["-c"].
	Args []string `mapstructure:"args" yaml:"args"`
	// Separator joins an item's statements into one script.
	Separator string `mapstructure:"separator" yaml:"separator"`
	// WorkingDir is where statements run; empty means the launcher's dir.
	WorkingDir string `mapstructure:"working_dir" yaml:"working_dir"`
	// Env is appended to the launcher's environment, as KEY=VALUE.
	Env []string `mapstructure:"env" yaml:"env"`
	// CommandTerminator, if set, is a single character
	// appended to every line of input.
	CommandTerminator string `mapstructure:"command_terminator" yaml:"command_terminator"`
}

// BuffersConfig sizes the channels between the launcher and the subprocess.
type BuffersConfig struct {
	Input              int `mapstructure:"input" yaml:"input"`
	Output             int `mapstructure:"output" yaml:"output"`
	Error              int `mapstructure:"error" yaml:"error"`
	MaxLineBytes       int `mapstructure:"max_line_bytes" yaml:"max_line_bytes"`
	InputSendTimeoutMs int `mapstructure:"input_send_timeout_ms" yaml:"input_send_timeout_ms"`
	StallWarningMs     int `mapstructure:"stall_warning_ms" yaml:"stall_warning_ms"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	// PollIntervalMs is how often the UI collects output.
	PollIntervalMs int `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`
	// MaxOutputLines limits how many lines of output are kept on screen.
	MaxOutputLines int `mapstructure:"max_output_lines" yaml:"max_output_lines"`
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// File receives JSON logs. Empty means no logging,
	// since stderr belongs to the UI.
	File string `mapstructure:"file" yaml:"file"`
}

// Item is one entry in the launcher's menu.
type Item struct {
	Name        string   `mapstructure:"name" yaml:"name"`
	Description string   `mapstructure:"description" yaml:"description,omitempty"`
	Statements  []string `mapstructure:"statements" yaml:"statements"`
	// SecretInput hides what's typed, e.g. for password prompts.
	SecretInput bool `mapstructure:"secret_input" yaml:"secret_input,omitempty"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Path:      "/bin/sh",
			Args:      []string{"-c"},
			Separator: "; ",
		},
		Buffers: BuffersConfig{
			Input:              5,
			Output:             10000,
			Error:              100,
			MaxLineBytes:       1024 * 1024,
			InputSendTimeoutMs: 250,
			StallWarningMs:     7777,
		},
		UI: UIConfig{
			PollIntervalMs: 100,
			MaxOutputLines: 1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Items: []Item{
			{
				Name:        "Clone repo",
				Description: "git clone, asking for the URL",
				Statements: []string{
					"echo 'Repository URL?'",
					"read url",
					`git clone "$url"`,
				},
			},
			{
				Name:        "Push repo",
				Description: "git push from the working dir",
				Statements:  []string{"git push"},
				SecretInput: true,
			},
			{
				Name:        "Greet",
				Description: "asks for a name, says hello",
				Statements: []string{
					"echo 'Who goes there?'",
					"read name",
					`echo "hello $name"`,
				},
			},
		},
	}
}

// PollInterval returns the UI poll interval as a Duration.
func (c *UIConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// SetDefaultsOn registers default values with v.
// This should be called before reading the config file.
func SetDefaultsOn(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("shell.path", defaults.Shell.Path)
	v.SetDefault("shell.args", defaults.Shell.Args)
	v.SetDefault("shell.separator", defaults.Shell.Separator)
	v.SetDefault("shell.working_dir", defaults.Shell.WorkingDir)
	v.SetDefault("shell.env", defaults.Shell.Env)
	v.SetDefault("shell.command_terminator", defaults.Shell.CommandTerminator)

	v.SetDefault("buffers.input", defaults.Buffers.Input)
	v.SetDefault("buffers.output", defaults.Buffers.Output)
	v.SetDefault("buffers.error", defaults.Buffers.Error)
	v.SetDefault("buffers.max_line_bytes", defaults.Buffers.MaxLineBytes)
	v.SetDefault("buffers.input_send_timeout_ms", defaults.Buffers.InputSendTimeoutMs)
	v.SetDefault("buffers.stall_warning_ms", defaults.Buffers.StallWarningMs)

	v.SetDefault("ui.poll_interval_ms", defaults.UI.PollIntervalMs)
	v.SetDefault("ui.max_output_lines", defaults.UI.MaxOutputLines)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)

	v.SetDefault("items", defaults.Items)
}

// LoadFrom reads the configuration from v into a Config struct
// and validates it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shbridge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shbridge"
	}
	return filepath.Join(home, ".config", "shbridge")
}

// ConfigFile returns the path to the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Parameters converts the config into parameters for shbridge.Submit.
func (c *Config) Parameters(log *logging.Logger) shbridge.Parameters {
	p := shbridge.Parameters{
		Params: channeler.Params{
			Path:         c.Shell.Path,
			Args:         append([]string(nil), c.Shell.Args...),
			Separator:    c.Shell.Separator,
			WorkingDir:   c.Shell.WorkingDir,
			Env:          append([]string(nil), c.Shell.Env...),
			BuffSizeIn:   c.Buffers.Input,
			BuffSizeOut:  c.Buffers.Output,
			BuffSizeErr:  c.Buffers.Error,
			MaxLineBytes: c.Buffers.MaxLineBytes,
			StallWarning: time.Duration(c.Buffers.StallWarningMs) * time.Millisecond,
			Logger:       log,
		},
		InputSendTimeout: time.Duration(c.Buffers.InputSendTimeoutMs) * time.Millisecond,
	}
	if c.Shell.CommandTerminator != "" {
		p.CommandTerminator = c.Shell.CommandTerminator[0]
	}
	return p
}

// FindItem returns the item with the given name, or false.
func (c *Config) FindItem(name string) (Item, bool) {
	for _, it := range c.Items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}
