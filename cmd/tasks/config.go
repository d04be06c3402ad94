package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/tasks/internal/model"
)

func configCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current configuration (defaults plus TASKS_* overrides) to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg, err := model.LoadConfig(path)
			if err != nil {
				return err
			}
			if err := model.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := model.LoadConfig(opts.path())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:      %s\n", opts.path())
			fmt.Fprintf(out, "server:      %s (timeout %ds)\n", cfg.Server.BaseURL, cfg.Server.TimeoutSec)
			fmt.Fprintf(out, "storage:     %s\n", cfg.Storage.DBPath)
			fmt.Fprintf(out, "horizon:     %s\n", cfg.StartHorizon().Title())
			fmt.Fprintf(out, "refresh:     %ds\n", cfg.Display.RefreshIntervalSec)
			fmt.Fprintf(out, "log:         %s (%s)\n", cfg.Log.File, cfg.Log.Level)
			return nil
		},
	})

	return cmd
}
