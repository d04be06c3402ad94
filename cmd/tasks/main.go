package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Track daily tasks kept on a remote task service",
		Long: `tasks shows the tasks due within a rolling horizon and lets you add,
complete and delete them. Without a subcommand it starts the terminal UI.

Examples:
  tasks
  tasks list --horizon week
  tasks add "Buy milk" --date 2026-10-20
  tasks toggle 42 --json`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/tasks/config.yaml)")

	rootCmd.AddCommand(listCmd(&opts))
	rootCmd.AddCommand(addCmd(&opts))
	rootCmd.AddCommand(toggleCmd(&opts))
	rootCmd.AddCommand(deleteCmd(&opts))
	rootCmd.AddCommand(filterCmd(&opts))
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(configCmd(&opts))

	return rootCmd
}
