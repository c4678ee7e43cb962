package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive budget shell",
		Long: `Start an interactive session. Type 'help' inside the shell for the list of
commands. Every change is saved as soon as it is made.`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	shell, l, err := newShell(cmd)
	if err != nil {
		return err
	}

	slog.Debug("Starting interactive shell", "location", l.Location())
	return shell.Run(cmd.Context())
}
