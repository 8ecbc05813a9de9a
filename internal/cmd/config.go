package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/monopole/shbridge/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newConfigCmd() *cobra.Command {
	show := func(cmd *cobra.Command, _ []string) error {
		data, err := yaml.Marshal(a.cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View shbridge configuration",
		Long: `View shbridge configuration.

Without arguments, displays the effective configuration as YAML.`,
		RunE: show,
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE:  show,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.v.ConfigFileUsed()
			if path == "" {
				path = config.ConfigFile() + " (not found)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ConfigFile()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file %s already exists", path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	})
	return configCmd
}
