package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/ledger"
	"github.com/Veraticus/pennywise/internal/storage"
)

// openLedger builds the configured store and loads the ledger from it.
func openLedger(ctx context.Context) (*ledger.Ledger, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	store, err := storage.New(appConfig.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return ledger.Open(ctx, store), nil
}

// newShell opens the ledger and wires a shell to the command's streams.
func newShell(cmd *cobra.Command) (*cli.Shell, *ledger.Ledger, error) {
	l, err := openLedger(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cli.NewShell(l, cmd.InOrStdin(), cmd.OutOrStdout()), l, nil
}

// dispatch runs a single shell command from the command line.
func dispatch(verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		shell, _, err := newShell(cmd)
		if err != nil {
			return err
		}
		return shell.Dispatch(cmd.Context(), verb, args)
	}
}
