package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/aggregate"
	"github.com/Veraticus/pennywise/internal/report"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the budget summary as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			l, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			summary := aggregate.New(l).Summary()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() {
					if closeErr := file.Close(); closeErr != nil {
						slog.Error("failed to close export file", "error", closeErr)
					}
				}()
				w = file
			}

			return report.Write(w, reportFormat, summary, time.Now())
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatJSON), "output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
