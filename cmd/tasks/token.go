package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/99designs/keyring"
	"github.com/spf13/cobra"

	"github.com/nhle/tasks/internal/credential"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the task service API token",
		Long: `Store or remove the bearer token sent to the task service.

The token is kept in the system keyring. TASKS_API_TOKEN overrides it.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [token]",
		Short: "Store the API token (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				token, err = readToken(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			if token == "" {
				return errors.New("empty token")
			}

			if err := credential.Set(credential.APITokenKey, token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := credential.Delete(credential.APITokenKey)
			if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
			return nil
		},
	})

	return cmd
}

// readToken returns the first line of r, trimmed.
func readToken(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
