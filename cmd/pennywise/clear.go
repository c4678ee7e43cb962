package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
)

func clearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all entries and budget goals",
		Long: `Clear removes every income entry, expense entry and budget goal.

This is a destructive operation. You will be asked to confirm unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shell, l, err := newShell(cmd)
			if err != nil {
				return err
			}

			if !force {
				return shell.Dispatch(cmd.Context(), "clear", nil)
			}

			if err := l.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("All data cleared."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
