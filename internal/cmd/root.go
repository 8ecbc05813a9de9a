package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/monopole/shbridge/internal/config"
	"github.com/monopole/shbridge/internal/logging"
	"github.com/monopole/shbridge/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ExitCodeError carries a subprocess' non-zero exit code
// out to main.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app holds what the commands share.
type app struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
	cfg     *config.Config
	log     *logging.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "shbridge",
		Short: "Menu launcher for interactive shell commands",
		Long: `shbridge offers a menu of configured items. Picking one runs
its shell statements, shows their output as it arrives, and
forwards what you type to them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Close()
			}
		},
		RunE: a.runTUI,
	}
	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default is $HOME/.config/shbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"log details to stderr (ignored by the menu, which owns the terminal)")

	rootCmd.AddCommand(a.newRunCmd())
	rootCmd.AddCommand(a.newItemsCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	return rootCmd
}

func (a *app) initConfig() error {
	a.v = viper.New()
	// Set defaults first so they're available even without a config file
	config.SetDefaultsOn(a.v)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(config.ConfigDir())
		a.v.AddConfigPath(".")
	}
	a.v.SetEnvPrefix("SHBRIDGE")
	// e.g., SHBRIDGE_SHELL_PATH for shell.path
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	// A missing config file is fine, unless it was named explicitly.
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config; %w", err)
		}
	}
	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return a.initLogging()
}

func (a *app) initLogging() error {
	switch {
	case a.cfg.Logging.File != "":
		l, err := logging.NewLogger(a.cfg.Logging.File, a.cfg.Logging.Level)
		if err != nil {
			return err
		}
		a.log = l
	case a.verbose:
		a.log, _ = logging.NewLogger("", logging.LevelDebug)
	default:
		a.log = logging.NopLogger()
	}
	logging.SetDefault(a.log)
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	log := a.log
	if a.cfg.Logging.File == "" {
		// The terminal belongs to the menu.
		log = logging.NopLogger()
	}
	m := tui.New(
		&tui.ShellLauncher{Params: a.cfg.Parameters(log)},
		a.cfg.Items,
		tui.Options{
			PollInterval:   a.cfg.UI.PollInterval(),
			MaxOutputLines: a.cfg.UI.MaxOutputLines,
			Logger:         log,
		})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	if a.v.ConfigFileUsed() != "" {
		config.Watch(a.v, func(cfg *config.Config, err error) {
			if err != nil {
				log.Warn("ignoring bad config change", "error", err)
				return
			}
			p.Send(tui.ItemsChanged(cfg.Items))
		})
	}
	_, err := p.Run()
	return err
}
